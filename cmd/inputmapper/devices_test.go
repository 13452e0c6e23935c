package main

import (
	"testing"

	"github.com/function61/gokit/testing/assert"
	"github.com/joonas-fi/inputmapper/internal/xi2"
)

func TestMatchDevice(t *testing.T) {
	devices := []xi2.XIDeviceInfo{
		{Deviceid: 2, Type: xi2.DeviceUseMasterPointer, Name: "Virtual core pointer", Enabled: true},
		{Deviceid: 12, Type: xi2.DeviceUseSlavePointer, Name: "Wacom Intuos S Pen", Enabled: true},
		{Deviceid: 13, Type: xi2.DeviceUseSlavePointer, Name: "Wacom Intuos S Pad", Enabled: true},
		{Deviceid: 14, Type: xi2.DeviceUseSlavePointer, Name: "Wacom Intuos S Pen", Enabled: false},
	}

	byName, err := matchDevice(devices, "Wacom Intuos S Pad")
	assert.Ok(t, err)
	assert.Assert(t, byName.Deviceid == 13)

	byId, err := matchDevice(devices, "12")
	assert.Ok(t, err)
	assert.EqualString(t, byId.Name, "Wacom Intuos S Pen")

	_, err = matchDevice(devices, "Wacom Intuos S Pen")
	assert.EqualString(t, err.Error(),
		"there are multiple devices named 'Wacom Intuos S Pen', specify the device id instead")

	_, err = matchDevice(devices, "nonexistent")
	assert.EqualString(t, err.Error(), "unable to find device nonexistent")

	_, err = matchDevice(devices, "99")
	assert.Assert(t, err != nil)
}

func TestDeviceUse(t *testing.T) {
	assert.EqualString(t, deviceUse(xi2.DeviceUseMasterKeyboard), "master keyboard")
	assert.EqualString(t, deviceUse(xi2.DeviceUseFloatingSlave), "floating slave")
	assert.EqualString(t, deviceUse(77), "unknown")
}
