// Package xi2 is a hand-maintained binding for the subset of the X Input
// Extension (version 2) that device property manipulation needs:
// XIQueryVersion, XIQueryDevice, XIGetProperty and XIChangeProperty.
//
// It follows the request/cookie/reply conventions of the generated
// BurntSushi/xgb extension packages (randr, xinerama, ...) so that it plugs
// into the same *xgb.Conn.
package xi2

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// ExtensionName is the name the server knows the extension by.
const ExtensionName = "XInputExtension"

// Init must be run once per connection before making any other requests in
// this package.
func Init(c *xgb.Conn) error {
	reply, err := xproto.QueryExtension(c, uint16(len(ExtensionName)), ExtensionName).Reply()
	switch {
	case err != nil:
		return err
	case !reply.Present:
		return xgb.Errorf("no extension named %s could be found on the server", ExtensionName)
	}

	c.ExtLock.Lock()
	c.Extensions[ExtensionName] = reply.MajorOpcode
	c.ExtLock.Unlock()

	for errNum, fun := range xgb.NewExtErrorFuncs[ExtensionName] {
		xgb.NewErrorFuncs[int(reply.FirstError)+errNum] = fun
	}

	return nil
}

// DeviceId identifies one input device on the connection's server.
type DeviceId uint16

// Special device ids accepted by requests that take a device argument.
const (
	DeviceAll       DeviceId = 0
	DeviceAllMaster DeviceId = 1
)

// Device uses, as reported in XIDeviceInfo.Type.
const (
	DeviceUseMasterPointer  = 1
	DeviceUseMasterKeyboard = 2
	DeviceUseSlavePointer   = 3
	DeviceUseSlaveKeyboard  = 4
	DeviceUseFloatingSlave  = 5
)

// Extension error numbers, relative to the extension's first error code.
const (
	BadDevice  = 0
	BadEvent   = 1
	BadMode    = 2
	DeviceBusy = 3
	BadClass   = 4
)

// extensionError implements xgb.Error for the extension's error family.
type extensionError struct {
	Sequence uint16
	NiceName string
}

func (err extensionError) SequenceId() uint16 {
	return err.Sequence
}

func (err extensionError) BadId() uint32 {
	return 0
}

func (err extensionError) Error() string {
	return fmt.Sprintf("%s {Sequence: %d}", err.NiceName, err.Sequence)
}

func newExtensionErrorFun(niceName string) xgb.NewErrorFun {
	return func(buf []byte) xgb.Error {
		return extensionError{
			Sequence: xgb.Get16(buf[2:]),
			NiceName: niceName,
		}
	}
}

func init() {
	xgb.NewExtErrorFuncs[ExtensionName] = map[int]xgb.NewErrorFun{
		BadDevice:  newExtensionErrorFun("BadDevice"),
		BadEvent:   newExtensionErrorFun("BadEvent"),
		BadMode:    newExtensionErrorFun("BadMode"),
		DeviceBusy: newExtensionErrorFun("DeviceBusy"),
		BadClass:   newExtensionErrorFun("BadClass"),
	}
}

// Minor opcodes of the requests bound here.
const (
	opXIQueryVersion   = 47
	opXIQueryDevice    = 48
	opXIChangeProperty = 57
	opXIGetProperty    = 59
)

func panicUninitialized(request string) {
	panic("cannot issue request '" + request + "' using the uninitialized extension '" +
		ExtensionName + "'. xi2.Init(connObj) must be called first.")
}

// XIQueryVersionCookie is a cookie used only for XIQueryVersion requests.
type XIQueryVersionCookie struct {
	*xgb.Cookie
}

// XIQueryVersion announces the client's supported XI version and sends a
// checked request.
func XIQueryVersion(c *xgb.Conn, MajorVersion uint16, MinorVersion uint16) XIQueryVersionCookie {
	c.ExtLock.RLock()
	defer c.ExtLock.RUnlock()
	if _, ok := c.Extensions[ExtensionName]; !ok {
		panicUninitialized("XIQueryVersion")
	}
	cookie := c.NewCookie(true, true)
	c.NewRequest(xIQueryVersionRequest(c, MajorVersion, MinorVersion), cookie)
	return XIQueryVersionCookie{cookie}
}

// XIQueryVersionReply represents the data returned from a XIQueryVersion request.
type XIQueryVersionReply struct {
	Sequence     uint16
	Length       uint32
	MajorVersion uint16
	MinorVersion uint16
}

// Reply blocks and returns the reply data for a XIQueryVersion request.
func (cook XIQueryVersionCookie) Reply() (*XIQueryVersionReply, error) {
	buf, err := cook.Cookie.Reply()
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	return xIQueryVersionReply(buf), nil
}

func xIQueryVersionReply(buf []byte) *XIQueryVersionReply {
	v := new(XIQueryVersionReply)
	b := 1 // skip reply determinant
	b += 1 // padding

	v.Sequence = xgb.Get16(buf[b:])
	b += 2

	v.Length = xgb.Get32(buf[b:])
	b += 4

	v.MajorVersion = xgb.Get16(buf[b:])
	b += 2

	v.MinorVersion = xgb.Get16(buf[b:])
	b += 2

	return v
}

func xIQueryVersionRequest(c *xgb.Conn, MajorVersion uint16, MinorVersion uint16) []byte {
	size := 8
	b := 0
	buf := make([]byte, size)

	c.ExtLock.RLock()
	buf[b] = c.Extensions[ExtensionName]
	c.ExtLock.RUnlock()
	b += 1

	buf[b] = opXIQueryVersion
	b += 1

	xgb.Put16(buf[b:], uint16(size/4)) // request length
	b += 2

	xgb.Put16(buf[b:], MajorVersion)
	b += 2

	xgb.Put16(buf[b:], MinorVersion)
	b += 2

	return buf
}

// XIQueryDeviceCookie is a cookie used only for XIQueryDevice requests.
type XIQueryDeviceCookie struct {
	*xgb.Cookie
}

// XIQueryDevice requests information about the given device, or about every
// device when Deviceid is DeviceAll.
func XIQueryDevice(c *xgb.Conn, Deviceid DeviceId) XIQueryDeviceCookie {
	c.ExtLock.RLock()
	defer c.ExtLock.RUnlock()
	if _, ok := c.Extensions[ExtensionName]; !ok {
		panicUninitialized("XIQueryDevice")
	}
	cookie := c.NewCookie(true, true)
	c.NewRequest(xIQueryDeviceRequest(c, Deviceid), cookie)
	return XIQueryDeviceCookie{cookie}
}

// XIDeviceInfo describes one input device. Device classes are consumed during
// parsing but not surfaced; property manipulation has no use for them.
type XIDeviceInfo struct {
	Deviceid   DeviceId
	Type       uint16
	Attachment DeviceId
	Enabled    bool
	Name       string
}

// XIQueryDeviceReply represents the data returned from a XIQueryDevice request.
type XIQueryDeviceReply struct {
	Sequence uint16
	Length   uint32
	NumInfos uint16
	Infos    []XIDeviceInfo
}

// Reply blocks and returns the reply data for a XIQueryDevice request.
func (cook XIQueryDeviceCookie) Reply() (*XIQueryDeviceReply, error) {
	buf, err := cook.Cookie.Reply()
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	return xIQueryDeviceReply(buf), nil
}

func xIQueryDeviceReply(buf []byte) *XIQueryDeviceReply {
	v := new(XIQueryDeviceReply)
	b := 1 // skip reply determinant
	b += 1 // padding

	v.Sequence = xgb.Get16(buf[b:])
	b += 2

	v.Length = xgb.Get32(buf[b:])
	b += 4

	v.NumInfos = xgb.Get16(buf[b:])
	b += 2

	b += 22 // padding

	v.Infos = make([]XIDeviceInfo, 0, v.NumInfos)
	for i := 0; i < int(v.NumInfos); i++ {
		info := XIDeviceInfo{}

		info.Deviceid = DeviceId(xgb.Get16(buf[b:]))
		b += 2

		info.Type = xgb.Get16(buf[b:])
		b += 2

		info.Attachment = DeviceId(xgb.Get16(buf[b:]))
		b += 2

		numClasses := int(xgb.Get16(buf[b:]))
		b += 2

		nameLen := int(xgb.Get16(buf[b:]))
		b += 2

		info.Enabled = buf[b] == 1
		b += 1

		b += 1 // padding

		info.Name = string(buf[b : b+nameLen])
		b += xgb.Pad(nameLen)

		// each class carries its own length in 4-byte units at offset 2
		for j := 0; j < numClasses; j++ {
			b += int(xgb.Get16(buf[b+2:])) * 4
		}

		v.Infos = append(v.Infos, info)
	}

	return v
}

func xIQueryDeviceRequest(c *xgb.Conn, Deviceid DeviceId) []byte {
	size := 8
	b := 0
	buf := make([]byte, size)

	c.ExtLock.RLock()
	buf[b] = c.Extensions[ExtensionName]
	c.ExtLock.RUnlock()
	b += 1

	buf[b] = opXIQueryDevice
	b += 1

	xgb.Put16(buf[b:], uint16(size/4)) // request length
	b += 2

	xgb.Put16(buf[b:], uint16(Deviceid))
	b += 2

	b += 2 // padding

	return buf
}

// XIGetPropertyCookie is a cookie used only for XIGetProperty requests.
type XIGetPropertyCookie struct {
	*xgb.Cookie
}

// XIGetProperty reads Len 32-bit units of the given device property starting
// at Offset. Type filters the read: a property of a different type yields a
// reply describing the actual type with no items.
func XIGetProperty(c *xgb.Conn, Deviceid DeviceId, Delete bool, Property xproto.Atom,
	Type xproto.Atom, Offset uint32, Len uint32) XIGetPropertyCookie {

	c.ExtLock.RLock()
	defer c.ExtLock.RUnlock()
	if _, ok := c.Extensions[ExtensionName]; !ok {
		panicUninitialized("XIGetProperty")
	}
	cookie := c.NewCookie(true, true)
	c.NewRequest(xIGetPropertyRequest(c, Deviceid, Delete, Property, Type, Offset, Len), cookie)
	return XIGetPropertyCookie{cookie}
}

// XIGetPropertyReply represents the data returned from a XIGetProperty request.
// Items holds NumItems elements of Format bits each, raw, in the connection's
// byte order.
type XIGetPropertyReply struct {
	Sequence   uint16
	Length     uint32
	Type       xproto.Atom
	BytesAfter uint32
	NumItems   uint32
	Format     byte
	Items      []byte
}

// Reply blocks and returns the reply data for a XIGetProperty request.
func (cook XIGetPropertyCookie) Reply() (*XIGetPropertyReply, error) {
	buf, err := cook.Cookie.Reply()
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	return xIGetPropertyReply(buf), nil
}

func xIGetPropertyReply(buf []byte) *XIGetPropertyReply {
	v := new(XIGetPropertyReply)
	b := 1 // skip reply determinant
	b += 1 // padding

	v.Sequence = xgb.Get16(buf[b:])
	b += 2

	v.Length = xgb.Get32(buf[b:])
	b += 4

	v.Type = xproto.Atom(xgb.Get32(buf[b:]))
	b += 4

	v.BytesAfter = xgb.Get32(buf[b:])
	b += 4

	v.NumItems = xgb.Get32(buf[b:])
	b += 4

	v.Format = buf[b]
	b += 1

	b += 11 // padding

	nbytes := int(v.NumItems) * int(v.Format) / 8
	if b+nbytes > len(buf) {
		nbytes = len(buf) - b
	}
	v.Items = buf[b : b+nbytes]

	return v
}

func xIGetPropertyRequest(c *xgb.Conn, Deviceid DeviceId, Delete bool, Property xproto.Atom,
	Type xproto.Atom, Offset uint32, Len uint32) []byte {

	size := 24
	b := 0
	buf := make([]byte, size)

	c.ExtLock.RLock()
	buf[b] = c.Extensions[ExtensionName]
	c.ExtLock.RUnlock()
	b += 1

	buf[b] = opXIGetProperty
	b += 1

	xgb.Put16(buf[b:], uint16(size/4)) // request length
	b += 2

	xgb.Put16(buf[b:], uint16(Deviceid))
	b += 2

	if Delete {
		buf[b] = 1
	}
	b += 1

	b += 1 // padding

	xgb.Put32(buf[b:], uint32(Property))
	b += 4

	xgb.Put32(buf[b:], uint32(Type))
	b += 4

	xgb.Put32(buf[b:], Offset)
	b += 4

	xgb.Put32(buf[b:], Len)
	b += 4

	return buf
}

// XIChangePropertyCookie is a cookie used only for XIChangeProperty requests.
type XIChangePropertyCookie struct {
	*xgb.Cookie
}

// XIChangeProperty writes a device property. Data holds NumItems elements of
// Format bits each, raw, in the connection's byte order. Mode is one of the
// xproto.PropMode constants. This request will not cause a reply to be generated.
// Any errors can be checked by calling XIChangePropertyChecked instead.
func XIChangeProperty(c *xgb.Conn, Deviceid DeviceId, Mode byte, Format byte,
	Property xproto.Atom, Type xproto.Atom, NumItems uint32, Data []byte) XIChangePropertyCookie {

	c.ExtLock.RLock()
	defer c.ExtLock.RUnlock()
	if _, ok := c.Extensions[ExtensionName]; !ok {
		panicUninitialized("XIChangeProperty")
	}
	cookie := c.NewCookie(false, false)
	c.NewRequest(xIChangePropertyRequest(c, Deviceid, Mode, Format, Property, Type, NumItems, Data), cookie)
	return XIChangePropertyCookie{cookie}
}

// XIChangePropertyChecked sends a checked request, for use when the caller
// wants to syncronize the write with (cook).Check().
func XIChangePropertyChecked(c *xgb.Conn, Deviceid DeviceId, Mode byte, Format byte,
	Property xproto.Atom, Type xproto.Atom, NumItems uint32, Data []byte) XIChangePropertyCookie {

	c.ExtLock.RLock()
	defer c.ExtLock.RUnlock()
	if _, ok := c.Extensions[ExtensionName]; !ok {
		panicUninitialized("XIChangeProperty")
	}
	cookie := c.NewCookie(true, false)
	c.NewRequest(xIChangePropertyRequest(c, Deviceid, Mode, Format, Property, Type, NumItems, Data), cookie)
	return XIChangePropertyCookie{cookie}
}

// Check returns an error if one occurred for checked requests that are not
// expecting a reply.
func (cook XIChangePropertyCookie) Check() error {
	return cook.Cookie.Check()
}

func xIChangePropertyRequest(c *xgb.Conn, Deviceid DeviceId, Mode byte, Format byte,
	Property xproto.Atom, Type xproto.Atom, NumItems uint32, Data []byte) []byte {

	size := xgb.Pad(20 + len(Data))
	b := 0
	buf := make([]byte, size)

	c.ExtLock.RLock()
	buf[b] = c.Extensions[ExtensionName]
	c.ExtLock.RUnlock()
	b += 1

	buf[b] = opXIChangeProperty
	b += 1

	xgb.Put16(buf[b:], uint16(size/4)) // request length
	b += 2

	xgb.Put16(buf[b:], uint16(Deviceid))
	b += 2

	buf[b] = Mode
	b += 1

	buf[b] = Format
	b += 1

	xgb.Put32(buf[b:], uint32(Property))
	b += 4

	xgb.Put32(buf[b:], uint32(Type))
	b += 4

	xgb.Put32(buf[b:], NumItems)
	b += 4

	copy(buf[b:], Data)

	return buf
}
