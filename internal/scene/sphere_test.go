package scene

import (
	"math"
	"testing"

	"github.com/iburimskiy/ionized-visualizer/internal/spectrum"
	"github.com/iburimskiy/ionized-visualizer/internal/surface"
)

func TestSphereLattice(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantPoints    int
	}{
		{name: "desktop", width: 1024, height: 768, wantPoints: 600},
		{name: "mobile", width: 320, height: 480, wantPoints: 300},
		{name: "zero size keeps the sparse lattice", width: 0, height: 0, wantPoints: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSphere(NewRand(1))
			s.Reset(tt.width, tt.height)
			if got := s.Points(); got != tt.wantPoints {
				t.Fatalf("Points: got %d, want %d", got, tt.wantPoints)
			}
			for i, p := range s.points {
				if n := p.x*p.x + p.y*p.y + p.z*p.z; math.Abs(n-1) > 1e-9 {
					t.Fatalf("point %d: |p|^2 = %v", i, n)
				}
				if p.bin < 0 || p.bin >= 256 {
					t.Fatalf("point %d: bin %d", i, p.bin)
				}
			}
			if first, last := s.points[0].y, s.points[len(s.points)-1].y; first != 1 || last != -1 {
				t.Fatalf("lattice should span y=1..-1, got %v..%v", first, last)
			}
		})
	}
}

func TestSpherePointCountStable(t *testing.T) {
	s := NewSphere(NewRand(2))
	s.Reset(1024, 768)
	dst := surface.NewRecorder(1024, 768)
	for i := 0; i < 50; i++ {
		s.Render(dst, frameOf(uint8(i*5)))
	}
	if s.Points() != 600 {
		t.Fatalf("Points changed to %d without a reset", s.Points())
	}
}

func TestSphereSilence(t *testing.T) {
	s := NewSphere(NewRand(3))
	s.Reset(1024, 768)
	dst := surface.NewRecorder(1024, 768)
	for i := 0; i < 20; i++ {
		s.Render(dst, frameOf(0))
	}
	if x, y := s.Rotation(); x != 0 || y != 0 {
		t.Fatalf("rotation moved on silence: (%v,%v)", x, y)
	}
	if s.Shake() != 0 {
		t.Fatalf("jolt triggered on silence: %v", s.Shake())
	}
}

func TestSphereDrawPasses(t *testing.T) {
	s := NewSphere(NewRand(4))
	s.Reset(1024, 768)
	dst := surface.NewRecorder(1024, 768)
	s.Render(dst, frameOf(0))

	ops := dst.Ops
	if ops[0].Kind != surface.OpFillRect || ops[1].Kind != surface.OpRadialGradient {
		t.Fatalf("expected fade then nebula, got kinds %d, %d", ops[0].Kind, ops[1].Kind)
	}
	if ops[1].R != 1024*0.8 {
		t.Fatalf("nebula radius: got %v", ops[1].R)
	}

	// At silence every point is bright enough for a halo.
	halos, circles := 0, 0
	lastRadius := math.Inf(1)
	for _, op := range ops[2:] {
		switch op.Kind {
		case surface.OpRadialGradient:
			halos++
			if op.Mode != surface.CompositeAdditive {
				t.Fatalf("halo drawn in %s mode", op.Mode)
			}
		case surface.OpFillCircle:
			circles++
			if op.Mode != surface.CompositeNormal {
				t.Fatalf("point drawn in %s mode", op.Mode)
			}
			// Without rotation or amplitude the radius only depends on z
			// and shrinks as z grows, so ascending z means shrinking radii.
			if op.R > lastRadius+1e-9 {
				t.Fatalf("points not sorted by depth: %v after %v", op.R, lastRadius)
			}
			lastRadius = op.R
		}
	}
	if halos != 600 || circles != 600 {
		t.Fatalf("got %d halos and %d circles, want 600 each", halos, circles)
	}
	if dst.Composite() != surface.CompositeNormal {
		t.Fatalf("composite mode left at %s", dst.Composite())
	}
}

func TestSphereJolt(t *testing.T) {
	s := NewSphere(NewRand(5))
	s.Reset(1024, 768)
	dst := surface.NewRecorder(1024, 768)
	loud := frameOf(255)

	s.Render(dst, loud)
	if got, want := s.Shake(), 12*0.9; math.Abs(got-want) > 1e-9 {
		t.Fatalf("first loud tick: intensity %v, want %v", got, want)
	}

	retriggers := 0
	prev := s.Shake()
	for i := 0; i < 300; i++ {
		s.Render(dst, loud)
		cur := s.Shake()
		if cur < 0 {
			t.Fatalf("tick %d: negative intensity %v", i, cur)
		}
		if cur > prev {
			if prev > 0 {
				t.Fatalf("tick %d: re-triggered while intensity %v > 0", i, prev)
			}
			retriggers++
		}
		prev = cur
	}
	if retriggers == 0 {
		t.Fatalf("jolt never re-triggered after decaying")
	}

	// Moderate bass never triggers.
	s.Reset(1024, 768)
	for i := 0; i < 20; i++ {
		s.Render(dst, frameOf(160))
	}
	if s.Shake() != 0 {
		t.Fatalf("bass below threshold triggered a jolt: %v", s.Shake())
	}
}

func TestSphereRotationAccumulates(t *testing.T) {
	s := NewSphere(NewRand(6))
	s.Reset(800, 600)
	dst := surface.NewRecorder(800, 600)
	f := frameOf(128)
	b := spectrum.Split(f)
	stepY := b.Bass*0.02 + b.Highs*0.025
	stepX := b.Mids*0.015 + b.Highs*0.02

	px, py := s.Rotation()
	for i := 0; i < 100; i++ {
		s.Render(dst, f)
		x, y := s.Rotation()
		if x <= px || y <= py {
			t.Fatalf("tick %d: rotation did not increase", i)
		}
		if math.Abs((x-px)-stepX) > 1e-12 || math.Abs((y-py)-stepY) > 1e-12 {
			t.Fatalf("tick %d: rotation jumped by (%v,%v)", i, x-px, y-py)
		}
		px, py = x, y
	}

	s.Reset(800, 600)
	if x, y := s.Rotation(); x != 0 || y != 0 {
		t.Fatalf("Reset kept rotation (%v,%v)", x, y)
	}
}

func TestSphereDegenerateInput(t *testing.T) {
	s := NewSphere(NewRand(7))
	s.Reset(0, 600)
	dst := surface.NewRecorder(0, 600)
	s.Render(dst, frameOf(255))
	if len(dst.Ops) != 0 {
		t.Fatalf("zero width scene drew %d ops", len(dst.Ops))
	}
	if x, y := s.Rotation(); x != 0 || y != 0 {
		t.Fatalf("zero width scene mutated rotation")
	}

	s.Reset(1, 1)
	dst = surface.NewRecorder(1, 1)
	for i := 0; i < 50; i++ {
		s.Render(dst, frameOf(255))
		s.Render(dst, spectrum.Frame{9})
	}
	for _, op := range dst.Ops {
		for _, v := range []float64{op.X0, op.Y0, op.R} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite op %+v", op)
			}
		}
	}
}
