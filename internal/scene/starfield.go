package scene

import (
	"math/rand/v2"

	"github.com/iburimskiy/ionized-visualizer/internal/config"
	"github.com/iburimskiy/ionized-visualizer/internal/spectrum"
	"github.com/iburimskiy/ionized-visualizer/internal/surface"
)

type star struct {
	x, y, z float64
	px, py  float64 // screen position on the previous drawn tick
	fresh   bool
	bin     int
	hue     float64
}

// Starfield flies stars toward the viewer. Speed follows the highs band and
// each star streaks from its previous screen position.
type Starfield struct {
	rng           *rand.Rand
	width, height int
	stars         []star
}

func NewStarfield(rng *rand.Rand) *Starfield {
	return &Starfield{rng: orRand(rng)}
}

func (s *Starfield) Name() string { return "Stellar Field" }

// Stars returns the pool size.
func (s *Starfield) Stars() int { return len(s.stars) }

func (s *Starfield) Reset(width, height int) {
	s.width, s.height = width, height
	s.stars = s.stars[:0]
	if width <= 0 || height <= 0 {
		return
	}

	n := config.StarCountSparse
	if dense(width) {
		n = config.StarCountDense
	}
	w, h := float64(width), float64(height)
	for i := 0; i < n; i++ {
		s.stars = append(s.stars, star{
			x:     (s.rng.Float64() - 0.5) * w,
			y:     (s.rng.Float64() - 0.5) * h,
			z:     w * (1 - s.rng.Float64()),
			fresh: true,
			bin:   s.rng.IntN(config.StarBinRange),
			hue:   config.StarHueBase + s.rng.Float64()*config.StarHueSpread,
		})
	}
}

// Speed is the per tick depth step for the given highs level.
func Speed(highs float64) float64 {
	return 0.5 + highs*highs*120
}

func (s *Starfield) Render(dst surface.Surface, frame spectrum.Frame) {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	w, h := float64(s.width), float64(s.height)
	cx, cy := w/2, h/2
	speed := Speed(spectrum.Highs(frame))

	fade(dst, w, h, config.StarFade)

	for i := range s.stars {
		st := &s.stars[i]
		st.z -= speed
		if st.z < 1 {
			s.respawn(st)
			continue
		}

		scale := w / st.z
		sx := st.x*scale + cx
		sy := st.y*scale + cy
		if sx < 0 || sx > w || sy < 0 || sy > h {
			// No streak on the respawn tick, it would cross the screen.
			s.respawn(st)
			continue
		}

		energy := frame.Norm(st.bin)
		depth := 1 - st.z/w
		size := depth * (1 + energy*6)
		if size <= 0 {
			continue
		}

		if st.fresh {
			st.px, st.py = sx, sy
			st.fresh = false
			continue
		}
		c := surface.HSLA{
			H: st.hue,
			S: 100,
			L: 60 + energy*40,
			A: depth * (0.5 + energy*0.5),
		}
		dst.StrokeLine(st.px, st.py, sx, sy, size, c)
		st.px, st.py = sx, sy
	}
}

func (s *Starfield) respawn(st *star) {
	w, h := float64(s.width), float64(s.height)
	st.x = (s.rng.Float64() - 0.5) * w
	st.y = (s.rng.Float64() - 0.5) * h
	st.z = w
	st.fresh = true
}
