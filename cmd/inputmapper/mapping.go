package main

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xrect"
	"github.com/function61/gokit/log/logex"
	"github.com/joonas-fi/inputmapper/internal/xi2"
)

// both topology backends answer the same question: where does the named
// output sit inside the virtual screen?
type outputResolver interface {
	ResolveOutput(name string) (xrect.Rect, error)
}

type backendKind int

const (
	backendRandr backendKind = iota
	backendXinerama
)

// chooseBackend picks the topology backend. RandR >= 1.2 is required for
// CRTC queries, but some NVIDIA drivers advertise a sufficient RandR version
// without exposing RandR CRTCs; NV-CONTROL being present forces the Xinerama
// path even when the version check alone would allow RandR.
func chooseBackend(nvControlPresent bool, randrPresent bool, randrMajor uint32, randrMinor uint32) backendKind {
	if nvControlPresent || !randrPresent || randrMajor*1000+randrMinor < 1002 {
		return backendXinerama
	}

	return backendRandr
}

func extensionPresent(X *xgb.Conn, name string) bool {
	reply, err := xproto.QueryExtension(X, uint16(len(name)), name).Reply()

	return err == nil && reply.Present
}

func selectResolver(X *xgb.Conn, root xproto.Window) (outputResolver, error) {
	nvControlPresent := extensionPresent(X, "NV-CONTROL")
	randrPresent := extensionPresent(X, "RANDR")

	// version stays 0.0 (=> Xinerama) if RandR can't be negotiated
	randrMajor := uint32(0)
	randrMinor := uint32(0)
	if randrPresent && !nvControlPresent {
		if err := randr.Init(X); err == nil {
			if version, err := randr.QueryVersion(X, 1, 4).Reply(); err == nil {
				randrMajor = version.MajorVersion
				randrMinor = version.MinorVersion
			}
		}
	}

	if chooseBackend(nvControlPresent, randrPresent, randrMajor, randrMinor) == backendXinerama {
		return newXineramaResolver(X)
	}

	return newRandrResolver(X, root), nil
}

// mapDeviceToOutput confines the device's motion to the named output:
// resolve the output's region, normalize it against the whole virtual screen
// and push the resulting transform into the device property.
func mapDeviceToOutput(X *xgb.Conn, deviceId xi2.DeviceId, outputName string, logl *logex.Leveled) error {
	screen := xproto.Setup(X).DefaultScreen(X)

	resolver, err := selectResolver(X, screen.Root)
	if err != nil {
		return err
	}

	region, err := resolver.ResolveOutput(outputName)
	if err != nil {
		return err
	}

	matrix := crtcTransform(region, int(screen.WidthInPixels), int(screen.HeightInPixels))

	logl.Debug.Printf(
		"mapping device %d to %dx%d+%d+%d:\n%s",
		deviceId,
		region.Width(), region.Height(), region.X(), region.Y(),
		matrix)

	return applyMatrix(X, deviceId, &matrix)
}
