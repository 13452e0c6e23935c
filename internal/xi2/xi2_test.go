package xi2

import (
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/function61/gokit/testing/assert"
)

func TestXIQueryVersionReplyParse(t *testing.T) {
	buf := make([]byte, 32)
	buf[0] = 1 // reply
	xgb.Put16(buf[2:], 7)  // sequence
	xgb.Put32(buf[4:], 0)  // length
	xgb.Put16(buf[8:], 2)  // major
	xgb.Put16(buf[10:], 3) // minor

	v := xIQueryVersionReply(buf)

	assert.Assert(t, v.Sequence == 7)
	assert.Assert(t, v.MajorVersion == 2)
	assert.Assert(t, v.MinorVersion == 3)
}

func TestXIGetPropertyReplyParse(t *testing.T) {
	buf := make([]byte, 32+36)
	buf[0] = 1
	xgb.Put16(buf[2:], 11) // sequence
	xgb.Put32(buf[4:], 9)  // length (9 * 4 bytes of data)
	xgb.Put32(buf[8:], 99) // type atom
	xgb.Put32(buf[12:], 0) // bytes_after
	xgb.Put32(buf[16:], 9) // num_items
	buf[20] = 32           // format
	for i := 0; i < 9; i++ {
		xgb.Put32(buf[32+i*4:], uint32(i+1))
	}

	v := xIGetPropertyReply(buf)

	assert.Assert(t, v.Type == 99)
	assert.Assert(t, v.BytesAfter == 0)
	assert.Assert(t, v.NumItems == 9)
	assert.Assert(t, v.Format == 32)
	assert.Assert(t, len(v.Items) == 36)
	assert.Assert(t, xgb.Get32(v.Items[8:]) == 3)
}

func TestXIGetPropertyReplyParseTruncated(t *testing.T) {
	// a lying num_items must not make the parser read past the buffer
	buf := make([]byte, 32+4)
	buf[0] = 1
	xgb.Put32(buf[16:], 9) // num_items claims 9
	buf[20] = 32

	v := xIGetPropertyReply(buf)

	assert.Assert(t, len(v.Items) == 4)
}

func TestXIQueryDeviceReplyParse(t *testing.T) {
	// two devices: "pad" (one class attached) and "Wacom Pen" (no classes)
	name1 := "pad"       // padded to 4
	name2 := "Wacom Pen" // padded to 12

	buf := make([]byte, 32+12+4+8+12+12)
	buf[0] = 1
	xgb.Put16(buf[8:], 2) // num_infos

	b := 32
	xgb.Put16(buf[b:], 4)    // deviceid
	xgb.Put16(buf[b+2:], 3)  // type: slave pointer
	xgb.Put16(buf[b+4:], 2)  // attachment
	xgb.Put16(buf[b+6:], 1)  // num_classes
	xgb.Put16(buf[b+8:], 3)  // name_len
	buf[b+10] = 1            // enabled
	b += 12
	copy(buf[b:], name1)
	b += 4
	xgb.Put16(buf[b:], 1)   // class type
	xgb.Put16(buf[b+2:], 2) // class length in 4-byte units (covers these 8 bytes)
	b += 8

	xgb.Put16(buf[b:], 9)    // deviceid
	xgb.Put16(buf[b+2:], 3)  // type
	xgb.Put16(buf[b+4:], 2)  // attachment
	xgb.Put16(buf[b+6:], 0)  // num_classes
	xgb.Put16(buf[b+8:], 9)  // name_len
	buf[b+10] = 0            // disabled
	b += 12
	copy(buf[b:], name2)

	v := xIQueryDeviceReply(buf)

	assert.Assert(t, v.NumInfos == 2)
	assert.Assert(t, len(v.Infos) == 2)

	assert.Assert(t, v.Infos[0].Deviceid == 4)
	assert.EqualString(t, v.Infos[0].Name, "pad")
	assert.Assert(t, v.Infos[0].Enabled)

	assert.Assert(t, v.Infos[1].Deviceid == 9)
	assert.Assert(t, v.Infos[1].Type == DeviceUseSlavePointer)
	assert.Assert(t, v.Infos[1].Attachment == 2)
	assert.EqualString(t, v.Infos[1].Name, "Wacom Pen")
	assert.Assert(t, !v.Infos[1].Enabled)
}

func TestXIGetPropertyRequestLayout(t *testing.T) {
	buf := xIGetPropertyRequest(&xgb.Conn{}, 13, false, 201, 202, 0, 9)

	assert.Assert(t, len(buf) == 24)
	assert.Assert(t, buf[1] == opXIGetProperty)
	assert.Assert(t, xgb.Get16(buf[2:]) == 6) // length in 4-byte units
	assert.Assert(t, xgb.Get16(buf[4:]) == 13)
	assert.Assert(t, buf[6] == 0) // delete
	assert.Assert(t, xgb.Get32(buf[8:]) == 201)
	assert.Assert(t, xgb.Get32(buf[12:]) == 202)
	assert.Assert(t, xgb.Get32(buf[16:]) == 0)
	assert.Assert(t, xgb.Get32(buf[20:]) == 9)
}

func TestXIChangePropertyRequestLayout(t *testing.T) {
	data := make([]byte, 36)
	xgb.Put32(data[0:], 0xdeadbeef)

	buf := xIChangePropertyRequest(&xgb.Conn{}, 13, 0 /* replace */, 32, 201, 202, 9, data)

	assert.Assert(t, len(buf) == 56)
	assert.Assert(t, buf[1] == opXIChangeProperty)
	assert.Assert(t, xgb.Get16(buf[2:]) == 14) // length in 4-byte units
	assert.Assert(t, xgb.Get16(buf[4:]) == 13)
	assert.Assert(t, buf[6] == 0)  // mode
	assert.Assert(t, buf[7] == 32) // format
	assert.Assert(t, xgb.Get32(buf[8:]) == 201)
	assert.Assert(t, xgb.Get32(buf[12:]) == 202)
	assert.Assert(t, xgb.Get32(buf[16:]) == 9)
	assert.Assert(t, xgb.Get32(buf[20:]) == 0xdeadbeef)
}
