package main

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xrect"
)

type randrOutput struct {
	Id   randr.Output
	Info randr.GetOutputInfoReply
	Crtc randr.GetCrtcInfoReply
}

func (r *randrOutput) Name() string {
	return string(r.Info.Name)
}

// Region is the output's placement inside the virtual screen, as configured
// on its CRTC.
func (r *randrOutput) Region() xrect.Rect {
	conf := r.Crtc // shorthand

	return xrect.New(
		int(conf.X),
		int(conf.Y),
		int(conf.Width),
		int(conf.Height))
}

// outputUsable tells whether an output currently occupies a region of the
// virtual screen. An output can be present but disconnected, or connected but
// not driven by any CRTC (e.g. disabled); neither has a geometry to map to.
func outputUsable(info *randr.GetOutputInfoReply) bool {
	return info.Connection == randr.ConnectionConnected && info.Crtc != 0
}

func getConnectedOutputs(X *xgb.Conn, root xproto.Window) ([]randrOutput, error) {
	// Gets the current screen resources. Screen resources contains a list
	// of names, crtcs, outputs and modes, among other things.
	resources, err := randr.GetScreenResources(X, root).Reply()
	if err != nil {
		return nil, err
	}

	connectedOutputs := []randrOutput{}

	for _, output := range resources.Outputs {
		outputInfo, err := randr.GetOutputInfo(X, output, 0).Reply()
		if err != nil {
			return nil, err
		}

		if !outputUsable(outputInfo) {
			continue
		}

		// CRTC ("CRT Controller") is jargon for display controller.
		crtc, err := randr.GetCrtcInfo(X, outputInfo.Crtc, 0).Reply()
		if err != nil {
			return nil, err
		}

		connectedOutputs = append(connectedOutputs, randrOutput{
			Id:   output,
			Info: *outputInfo,
			Crtc: *crtc,
		})
	}

	return connectedOutputs, nil
}

// first exact match wins (output names are unique in practice, but the server
// reports them in a defined order so ties cannot change the result)
func findOutputByName(outputs []randrOutput, name string) *randrOutput {
	for idx := range outputs {
		if outputs[idx].Name() == name {
			return &outputs[idx]
		}
	}

	return nil
}

type randrResolver struct {
	conn *xgb.Conn
	root xproto.Window
}

func newRandrResolver(conn *xgb.Conn, root xproto.Window) *randrResolver {
	return &randrResolver{conn: conn, root: root}
}

func (r *randrResolver) ResolveOutput(name string) (xrect.Rect, error) {
	outputs, err := getConnectedOutputs(r.conn, r.root)
	if err != nil {
		return nil, err
	}

	output := findOutputByName(outputs, name)
	if output == nil {
		return nil, fmt.Errorf("unable to find output '%s'. Output may not be connected", name)
	}

	return output.Region(), nil
}
