package main

import (
	"fmt"

	"github.com/BurntSushi/xgbutil/xrect"
)

// Matrix is a row-major 3x3 affine transform in homogeneous 2D coordinates,
// in the storage order of the device property. Everything produced here is
// pure scale+translate, so the bottom row stays [0 0 1].
type Matrix [9]float32

func (m *Matrix) set(row int, col int, v float32) {
	m[row*3+col] = v
}

func (m *Matrix) setUnity() {
	*m = Matrix{}
	m.set(0, 0, 1)
	m.set(1, 1, 1)
	m.set(2, 2, 1)
}

func (m Matrix) String() string {
	return fmt.Sprintf(
		"[ %3.3f %3.3f %3.3f ]\n[ %3.3f %3.3f %3.3f ]\n[ %3.3f %3.3f %3.3f ]",
		m[0], m[1], m[2],
		m[3], m[4], m[5],
		m[6], m[7], m[8])
}

// crtcTransform maps the device's whole coordinate space onto the given
// region of the virtual screen. Region and screen size are both in
// virtual-screen pixels; the screen dimensions come from a live connection
// and are therefore positive.
func crtcTransform(region xrect.Rect, screenWidth int, screenHeight int) Matrix {
	var m Matrix
	m.setUnity()

	// offset
	m.set(0, 2, float32(region.X())/float32(screenWidth))
	m.set(1, 2, float32(region.Y())/float32(screenHeight))

	// mapping
	m.set(0, 0, float32(region.Width())/float32(screenWidth))
	m.set(1, 1, float32(region.Height())/float32(screenHeight))

	return m
}
