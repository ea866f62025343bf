package core

import "image/color"

// Color is a linear RGB color with channels nominally in [0, 1]
type Color struct {
	R, G, B float64
}

// Black is the zero color
var Black = Color{}

// NewColor creates a color from float channels
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromRGB8 creates a color from 8-bit channels
func ColorFromRGB8(r, g, b uint8) Color {
	return Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// ColorFromPacked decodes a 0xRRGGBBAA value; alpha is ignored
func ColorFromPacked(value uint32) Color {
	return ColorFromRGB8(uint8(value>>24), uint8(value>>16), uint8(value>>8))
}

// Add returns the componentwise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the componentwise product of two colors
func (c Color) Multiply(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale returns the color with every channel multiplied by s
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// RGB8 converts the color to 8-bit channels. Channels are clamped to
// [0, 1] and then truncated, so 0.999 maps to 254 and 1.5 maps to 255.
func (c Color) RGB8() [3]uint8 {
	return [3]uint8{toByte(c.R), toByte(c.G), toByte(c.B)}
}

// ToRGBA returns the opaque image/color form of the color
func (c Color) ToRGBA() color.RGBA {
	rgb := c.RGB8()
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func toByte(v float64) uint8 {
	// NaN fails both comparisons and lands on zero
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255.0)
}
