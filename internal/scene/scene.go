// Package scene holds the audio reactive scenes and the registry that picks
// the active one. Scenes keep all of their particle state on the instance;
// nothing is shared between scenes or surfaces.
package scene

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/ionized-visualizer/internal/config"
	"github.com/iburimskiy/ionized-visualizer/internal/spectrum"
	"github.com/iburimskiy/ionized-visualizer/internal/surface"
)

// Scene is one visualization. Reset must be called with the surface size
// before the first Render and again after every resize; Render paints one
// tick using the dimensions of the last Reset.
type Scene interface {
	Name() string
	Reset(width, height int)
	Render(dst surface.Surface, frame spectrum.Frame)
}

// NewRand returns a PCG backed generator. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

func orRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return NewRand(0)
}

func dense(width int) bool {
	return width >= config.DensityBreakpoint
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// fade darkens the whole surface with translucent black, leaving trails of
// earlier frames.
func fade(dst surface.Surface, w, h, alpha float64) {
	dst.FillRect(0, 0, w, h, color.NRGBA{A: uint8(alpha*255 + 0.5)})
}
