package scene

import (
	"errors"
	"testing"

	"github.com/iburimskiy/ionized-visualizer/internal/spectrum"
	"github.com/iburimskiy/ionized-visualizer/internal/surface"
)

type countingScene struct {
	name    string
	resets  [][2]int
	renders int
}

func (c *countingScene) Name() string { return c.name }

func (c *countingScene) Reset(w, h int) { c.resets = append(c.resets, [2]int{w, h}) }

func (c *countingScene) Render(surface.Surface, spectrum.Frame) { c.renders++ }

func TestDefaultRegistry(t *testing.T) {
	r := Default(NewRand(1))
	if r.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", r.Len())
	}
	if got := r.Label(); got != "1/2: Ionized Sphere" {
		t.Fatalf("Label: got %q", got)
	}
	r.Next()
	if got := r.Label(); got != "2/2: Stellar Field" {
		t.Fatalf("Label after Next: got %q", got)
	}
}

func TestRegistryNavigation(t *testing.T) {
	a, b, c := &countingScene{name: "a"}, &countingScene{name: "b"}, &countingScene{name: "c"}
	r := NewRegistry(a, b, c)

	steps := []struct {
		name string
		do   func()
		want int
	}{
		{name: "prev wraps to last", do: r.Prev, want: 2},
		{name: "next wraps to first", do: r.Next, want: 0},
		{name: "next", do: r.Next, want: 1},
		{name: "select", do: func() {
			if err := r.Select(2); err != nil {
				t.Fatalf("Select: %v", err)
			}
		}, want: 2},
	}
	for _, st := range steps {
		st.do()
		if r.Index() != st.want {
			t.Fatalf("%s: index %d, want %d", st.name, r.Index(), st.want)
		}
	}

	if err := r.Select(3); !errors.Is(err, ErrNoScene) {
		t.Fatalf("expected ErrNoScene, got %v", err)
	}
	if r.Index() != 2 {
		t.Fatalf("failed Select changed the index to %d", r.Index())
	}
}

func TestRegistryResetsBeforeRender(t *testing.T) {
	a, b := &countingScene{name: "a"}, &countingScene{name: "b"}
	r := NewRegistry(a, b)
	dst := surface.NewRecorder(1024, 768)
	frame := make(spectrum.Frame, 256)

	r.Render(dst, frame)
	r.Render(dst, frame)
	if len(a.resets) != 1 || a.resets[0] != [2]int{1024, 768} || a.renders != 2 {
		t.Fatalf("first scene: resets %v renders %d", a.resets, a.renders)
	}

	dst.Width, dst.Height = 320, 480
	r.Render(dst, frame)
	if len(a.resets) != 2 || a.resets[1] != [2]int{320, 480} {
		t.Fatalf("resize should reset: %v", a.resets)
	}

	r.Next()
	r.Render(dst, frame)
	if len(b.resets) != 1 || b.renders != 1 {
		t.Fatalf("switch should reset the new scene: resets %v renders %d", b.resets, b.renders)
	}

	// Switching back resets again even at the same size.
	r.Prev()
	r.Render(dst, frame)
	if len(a.resets) != 3 {
		t.Fatalf("returning to a scene should reset it: %v", a.resets)
	}
}

func TestEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	r.Next()
	r.Prev()
	r.Render(surface.NewRecorder(10, 10), nil)
	if r.Active() != nil || r.Label() != "" {
		t.Fatalf("empty registry should have no active scene")
	}
}
