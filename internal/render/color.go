package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// NRGBA returns the color as a fully opaque color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexToRGB parses a 6-digit hex color, with or without a leading '#'.
func HexToRGB(s string) (RGB, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) != 6 {
		return RGB{}, fmt.Errorf("%w: %q must have 6 hex digits", ErrInvalidColorFormat, s)
	}

	r, err1 := strconv.ParseUint(v[0:2], 16, 8)
	g, err2 := strconv.ParseUint(v[2:4], 16, 8)
	b, err3 := strconv.ParseUint(v[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return RGB{}, fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidColorFormat, s)
	}

	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// MustHex is HexToRGB for compile-time constants. It panics on bad input.
func MustHex(s string) RGB {
	c, err := HexToRGB(s)
	if err != nil {
		panic(err)
	}
	return c
}

// LerpChannel interpolates linearly from a (t=0) to b (t=1), rounding to the
// nearest integer and clamping to [0,255].
func LerpChannel(a, b uint8, t float64) uint8 {
	v := math.Round(float64(a)*(1-t) + float64(b)*t)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: LerpChannel(a.R, b.R, t),
		G: LerpChannel(a.G, b.G, t),
		B: LerpChannel(a.B, b.B, t),
	}
}
