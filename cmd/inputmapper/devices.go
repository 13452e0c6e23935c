package main

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb"
	"github.com/joonas-fi/inputmapper/internal/xi2"
)

// initXI2 announces XI 2.0 support to the server. Servers gate XI2 semantics
// on the version the client announces, so this must happen before any device
// request.
func initXI2(X *xgb.Conn) error {
	if err := xi2.Init(X); err != nil {
		return err
	}

	if _, err := xi2.XIQueryVersion(X, 2, 0).Reply(); err != nil {
		return fmt.Errorf("server does not support XI2: %w", err)
	}

	return nil
}

func queryAllDevices(X *xgb.Conn) ([]xi2.XIDeviceInfo, error) {
	reply, err := xi2.XIQueryDevice(X, xi2.DeviceAll).Reply()
	if err != nil {
		return nil, err
	}

	return reply.Infos, nil
}

// matchDevice resolves a user-supplied identifier: a number matches the
// device id, anything else the exact device name. Names aren't guaranteed
// unique, so an ambiguous name is an error instead of a guess.
func matchDevice(devices []xi2.XIDeviceInfo, identifier string) (*xi2.XIDeviceInfo, error) {
	if id, err := strconv.Atoi(identifier); err == nil {
		for idx := range devices {
			if devices[idx].Deviceid == xi2.DeviceId(id) {
				return &devices[idx], nil
			}
		}

		return nil, fmt.Errorf("unable to find device %s", identifier)
	}

	var found *xi2.XIDeviceInfo
	for idx := range devices {
		if devices[idx].Name != identifier {
			continue
		}

		if found != nil {
			return nil, fmt.Errorf(
				"there are multiple devices named '%s', specify the device id instead",
				identifier)
		}

		found = &devices[idx]
	}

	if found == nil {
		return nil, fmt.Errorf("unable to find device %s", identifier)
	}

	return found, nil
}

func findDevice(X *xgb.Conn, identifier string) (*xi2.XIDeviceInfo, error) {
	devices, err := queryAllDevices(X)
	if err != nil {
		return nil, err
	}

	return matchDevice(devices, identifier)
}

func deviceUse(deviceType uint16) string {
	switch deviceType {
	case xi2.DeviceUseMasterPointer:
		return "master pointer"
	case xi2.DeviceUseMasterKeyboard:
		return "master keyboard"
	case xi2.DeviceUseSlavePointer:
		return "slave pointer"
	case xi2.DeviceUseSlaveKeyboard:
		return "slave keyboard"
	case xi2.DeviceUseFloatingSlave:
		return "floating slave"
	default:
		return "unknown"
	}
}
