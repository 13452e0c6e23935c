package main

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/joonas-fi/inputmapper/internal/xi2"
)

// The device property consumed by the server's input pipeline. Its
// representation on the wire (9 x 32-bit FLOAT) is a fixed contract.
const (
	transformMatrixPropertyName = "Coordinate Transformation Matrix"
	floatTypeName               = "FLOAT"

	matrixItemCount = 9
	matrixFormat    = 32 // bits per item
)

// internExistingAtom resolves an atom only if the server already knows it, so
// that a missing atom reads as a missing server capability instead of
// silently creating the atom.
func internExistingAtom(X *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(X, true, uint16(len(name)), name).Reply()
	if err != nil {
		return xproto.AtomNone, err
	}

	return reply.Atom, nil
}

// validatePropertyShape checks that a property read returned exactly the
// shape we're about to overwrite. The read doubles as an empirical probe of
// the server's storage representation, so a mismatch means we must not write
// at all rather than write best-effort.
func validatePropertyShape(prop *xi2.XIGetPropertyReply, floatType xproto.Atom) error {
	if prop.Type != floatType ||
		prop.Format != matrixFormat ||
		prop.NumItems != matrixItemCount ||
		prop.BytesAfter != 0 ||
		len(prop.Items) != matrixItemCount*matrixFormat/8 {
		return fmt.Errorf("failed to retrieve current property values")
	}

	return nil
}

// overwriteMatrixValues replaces the retrieved property data in place with
// the matrix values, in storage order.
func overwriteMatrixValues(items []byte, m *Matrix) {
	for i, value := range m {
		xgb.Put32(items[i*4:], math.Float32bits(value))
	}
}

// applyMatrix installs the matrix into the device's transformation property
// with read-verify-write semantics: the current value is fetched to confirm
// the property's type and width, overwritten in place and written back in a
// single replace-mode request.
func applyMatrix(X *xgb.Conn, deviceId xi2.DeviceId, m *Matrix) error {
	propFloat, err := internExistingAtom(X, floatTypeName)
	if err != nil {
		return err
	}
	if propFloat == xproto.AtomNone {
		return fmt.Errorf("float atom not found, this server is too old")
	}

	propMatrix, err := internExistingAtom(X, transformMatrixPropertyName)
	if err != nil {
		return err
	}
	if propMatrix == xproto.AtomNone {
		return fmt.Errorf("coordinate transformation matrix not found, this server is too old")
	}

	prop, err := xi2.XIGetProperty(X, deviceId, false, propMatrix, propFloat, 0, matrixItemCount).Reply()
	if err != nil {
		return fmt.Errorf("failed to retrieve current property values: %w", err)
	}

	if err := validatePropertyShape(prop, propFloat); err != nil {
		return err
	}

	overwriteMatrixValues(prop.Items, m)

	return xi2.XIChangePropertyChecked(
		X,
		deviceId,
		xproto.PropModeReplace,
		prop.Format,
		propMatrix,
		propFloat,
		prop.NumItems,
		prop.Items).Check()
}
