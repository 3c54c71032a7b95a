// Package surface defines the raster target scenes paint on and provides an
// ebiten backed implementation plus a recording one.
package surface

import "image/color"

// CompositeMode selects how new paint combines with existing pixels.
type CompositeMode int

const (
	// CompositeNormal is source-over alpha blending.
	CompositeNormal CompositeMode = iota
	// CompositeAdditive adds color so overlaps brighten.
	CompositeAdditive
)

func (m CompositeMode) String() string {
	switch m {
	case CompositeNormal:
		return "normal"
	case CompositeAdditive:
		return "additive"
	}
	return "unknown"
}

// Surface is a persistent 2D raster. Content survives between frames; scenes
// fade it themselves.
type Surface interface {
	Size() (width, height int)
	FillRect(x, y, w, h float64, c color.Color)
	// FillRadialGradient fills the disc of radius r around (cx,cy), blending
	// from inner at the center to outer at the rim.
	FillRadialGradient(cx, cy, r float64, inner, outer color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	SetComposite(mode CompositeMode)
}
