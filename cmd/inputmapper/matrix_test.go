package main

import (
	"testing"

	"github.com/BurntSushi/xgbutil/xrect"
	"github.com/function61/gokit/testing/assert"
)

func TestCrtcTransform(t *testing.T) {
	// right half of a 1000x1000 virtual screen
	m := crtcTransform(xrect.New(500, 0, 500, 1000), 1000, 1000)
	assert.Assert(t, m == Matrix{
		0.5, 0, 0.5,
		0, 1, 0,
		0, 0, 1})

	m = crtcTransform(xrect.New(1920, 120, 1280, 800), 3200, 1080)
	assert.Assert(t, m[2] == float32(1920)/3200)
	assert.Assert(t, m[5] == float32(120)/1080)
	assert.Assert(t, m[0] == float32(1280)/3200)
	assert.Assert(t, m[4] == float32(800)/1080)

	// everything outside offset+scale stays at identity values
	assert.Assert(t, m[1] == 0 && m[3] == 0 && m[6] == 0 && m[7] == 0 && m[8] == 1)
}

func TestCrtcTransformIdentity(t *testing.T) {
	// region spanning the whole virtual screen must not transform anything
	m := crtcTransform(xrect.New(0, 0, 1920, 1080), 1920, 1080)
	assert.Assert(t, m == Matrix{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1})
}

func TestMatrixString(t *testing.T) {
	m := crtcTransform(xrect.New(500, 0, 500, 1000), 1000, 1000)

	assert.EqualString(t, m.String(), `[ 0.500 0.000 0.500 ]
[ 0.000 1.000 0.000 ]
[ 0.000 0.000 1.000 ]`)
}
