package scene

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/iburimskiy/ionized-visualizer/internal/config"
	"github.com/iburimskiy/ionized-visualizer/internal/spectrum"
	"github.com/iburimskiy/ionized-visualizer/internal/surface"
)

// Smallest perspective denominator used for projection.
const minDepth = 1e-3

var goldenAngle = math.Pi * (3 - math.Sqrt(5))

type spherePoint struct {
	x, y, z float64 // on the unit sphere
	bin     int
}

type projected struct {
	x, y  float64
	z     float64 // rotated depth in [-1,1]
	size  float64
	alpha float64
	color surface.HSLA
}

// jolt is the camera shake offset. Intensity decays toward zero and a new
// shake only starts once it has reached zero.
type jolt struct {
	x, y      float64
	intensity float64
}

// Sphere is a Fibonacci lattice point cloud tumbling with the bands, every
// point pushed outward by its own frequency bin.
type Sphere struct {
	rng           *rand.Rand
	width, height int

	points []spherePoint
	proj   []projected

	rotX, rotY float64
	jolt       jolt
}

func NewSphere(rng *rand.Rand) *Sphere {
	return &Sphere{rng: orRand(rng)}
}

func (s *Sphere) Name() string { return "Ionized Sphere" }

// Points returns the lattice size.
func (s *Sphere) Points() int { return len(s.points) }

// Rotation returns the accumulated angles about the X and Y axes.
func (s *Sphere) Rotation() (x, y float64) { return s.rotX, s.rotY }

// Shake returns the current camera jolt intensity.
func (s *Sphere) Shake() float64 { return s.jolt.intensity }

func (s *Sphere) Reset(width, height int) {
	s.width, s.height = width, height
	s.rotX, s.rotY = 0, 0
	s.jolt = jolt{}

	n := config.SpherePointsSparse
	if dense(width) {
		n = config.SpherePointsDense
	}
	s.points = lattice(s.points[:0], n, s.rng)
	s.proj = make([]projected, 0, n)
}

// lattice appends n near uniformly spread unit vectors using the golden angle
// spiral, each with a random bin.
func lattice(dst []spherePoint, n int, rng *rand.Rand) []spherePoint {
	for i := 0; i < n; i++ {
		y := 1.0
		if n > 1 {
			y = 1 - 2*float64(i)/float64(n-1)
		}
		r := math.Sqrt(math.Max(0, 1-y*y))
		theta := goldenAngle * float64(i)
		dst = append(dst, spherePoint{
			x:   math.Cos(theta) * r,
			y:   y,
			z:   math.Sin(theta) * r,
			bin: rng.IntN(config.BinCount),
		})
	}
	return dst
}

func (s *Sphere) Render(dst surface.Surface, frame spectrum.Frame) {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	w, h := float64(s.width), float64(s.height)
	b := spectrum.Split(frame)

	s.shake(b.Bass)
	cx := w/2 + s.jolt.x
	cy := h/2 + s.jolt.y

	s.rotY += b.Bass*0.02 + b.Highs*0.025
	s.rotX += b.Mids*0.015 + b.Highs*0.02

	fade(dst, w, h, config.SphereFade)

	glow := (b.Mids + b.Bass) / 2
	dst.FillRadialGradient(cx, cy, w*0.8,
		surface.HSLA{H: 220 + glow*80, S: 100, L: 20, A: glow * 0.4},
		surface.HSLA{})

	s.project(frame, cx, cy, w*0.8, math.Min(w, h)*0.25)

	// Halos first, added so overlaps brighten.
	dst.SetComposite(surface.CompositeAdditive)
	for _, p := range s.proj {
		if p.z > -1 && p.alpha > 0.5 {
			dst.FillRadialGradient(p.x, p.y, p.size*15, p.color.WithAlpha(p.alpha*0.1), p.color.WithAlpha(0))
		}
	}
	dst.SetComposite(surface.CompositeNormal)

	// Painter's order, ascending depth.
	sort.SliceStable(s.proj, func(i, j int) bool { return s.proj[i].z < s.proj[j].z })
	for _, p := range s.proj {
		if p.z > -1 {
			dst.FillCircle(p.x, p.y, p.size, p.color)
		}
	}
}

func (s *Sphere) shake(bass float64) {
	j := &s.jolt
	if bass > config.JoltThreshold && j.intensity <= 0 {
		j.intensity = bass * config.JoltGain
	}
	j.x = (s.rng.Float64() - 0.5) * j.intensity
	j.y = (s.rng.Float64() - 0.5) * j.intensity
	j.intensity = lerp(j.intensity, 0, config.JoltDecay)
	if j.intensity < config.JoltEpsilon {
		j.intensity = 0
	}
}

// project rotates every point about Y then X and fills s.proj.
func (s *Sphere) project(frame spectrum.Frame, cx, cy, perspective, baseRadius float64) {
	sinY, cosY := math.Sincos(s.rotY)
	sinX, cosX := math.Sincos(s.rotX)

	s.proj = s.proj[:0]
	for _, pt := range s.points {
		rx := pt.x*cosY - pt.z*sinY
		rz := pt.x*sinY + pt.z*cosY
		ry := pt.y*cosX - rz*sinX
		fz := pt.y*sinX + rz*cosX

		amp := frame.Norm(pt.bin)
		radius := baseRadius * (1 + amp*amp*0.5)

		denom := perspective + fz*radius
		if denom < minDepth {
			denom = minDepth
		}
		scale := perspective / denom

		alpha := scale*0.7 + amp*0.3
		s.proj = append(s.proj, projected{
			x:     cx + rx*radius*scale,
			y:     cy + ry*radius*scale,
			z:     fz,
			size:  scale * (1.5 + amp*3),
			alpha: alpha,
			color: surface.HSLA{H: 200 + amp*120, S: 100, L: 40 + amp*60, A: alpha},
		})
	}
}
