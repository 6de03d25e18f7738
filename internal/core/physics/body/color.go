package body

import "math/rand/v2"

// Color is an RGB triple with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// RGB builds a Color from 0-255 channel values.
func RGB(r, g, b float64) Color {
	return Color{R: r / 255, G: g / 255, B: b / 255}
}

// Bytes returns the channels scaled to 0-255.
func (c Color) Bytes() (r, g, b uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// Palette
var (
	Black     = Color{}
	White     = RGB(255, 255, 255)
	Red       = RGB(255, 0, 0)
	Yellow    = RGB(255, 255, 0)
	Gray      = RGB(105, 105, 105)
	NeonGreen = RGB(57, 255, 20)
)

var pastels = [...]Color{
	RGB(100, 149, 237),
	RGB(255, 127, 80),
	RGB(222, 49, 99),
}

// Pastel returns one of a small set of pastel colors at random.
func Pastel() Color {
	return pastels[rand.IntN(len(pastels))]
}

// Random returns a uniformly random color.
func Random() Color {
	return Color{R: rand.Float64(), G: rand.Float64(), B: rand.Float64()}
}
