package geom

import (
	"image/color"
	"math"
)

// Color is an RGBA color with channels normalized to [0, 1].
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
)

// ColorFrom normalizes any color.Color into straight (non-premultiplied)
// float channels.
func ColorFrom(c color.Color) Color {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Color{
		R: float32(n.R) / 0xffff,
		G: float32(n.G) / 0xffff,
		B: float32(n.B) / 0xffff,
		A: float32(n.A) / 0xffff,
	}
}

// ARGB unpacks a 0xAARRGGBB value.
func ARGB(v uint32) Color {
	return Color{
		R: float32((v>>16)&0xff) / 0xff,
		G: float32((v>>8)&0xff) / 0xff,
		B: float32(v&0xff) / 0xff,
		A: float32((v>>24)&0xff) / 0xff,
	}
}

// ARGB packs the color into 0xAARRGGBB.
func (c Color) ARGB() uint32 {
	n := c.NRGBA()
	return uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
}

// Array returns the channels in the [4]float32 layout the native layer takes.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// ColorFromArray is the inverse of Array.
func ColorFromArray(a [4]float32) Color {
	return Color{R: a[0], G: a[1], B: a[2], A: a[3]}
}

// Clamp limits every channel to [0, 1]. NaN becomes 0.
func (c Color) Clamp() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// NRGBA converts to an 8-bit straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	c = c.Clamp()
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func clamp01(v float32) float32 {
	switch {
	case math.IsNaN(float64(v)) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func to8(v float32) uint8 {
	return uint8(math.Round(float64(v) * 0xff))
}
