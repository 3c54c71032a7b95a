package surface

import (
	"image/color"
	"math"
)

// HSLA is a CSS style color: H in degrees, S and L in percent, A in [0,1].
// Out of range components are clamped when converted.
type HSLA struct {
	H, S, L, A float64
}

// WithAlpha returns c with its alpha replaced.
func (c HSLA) WithAlpha(a float64) HSLA {
	c.A = a
	return c
}

// NRGBA converts to non-premultiplied 8-bit RGBA.
func (c HSLA) NRGBA() color.NRGBA {
	r, g, b := hslToRgb(c.H, c.S/100, c.L/100)
	return color.NRGBA{R: r, G: g, B: b, A: unit8(c.A)}
}

// RGBA implements color.Color.
func (c HSLA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// hslToRgb converts HSL to RGB (hue: any degrees, saturation: 0-1, lightness: 0-1)
func hslToRgb(h, s, l float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s)
	l = clamp01(l)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return unit8(r + m), unit8(g + m), unit8(b + m)
}

func unit8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// straight returns the non-premultiplied components of c in [0,1].
func straight(c color.Color) (r, g, b, a float32) {
	var n color.NRGBA
	switch v := c.(type) {
	case HSLA:
		n = v.NRGBA()
	default:
		n = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255, float32(n.A) / 255
}
