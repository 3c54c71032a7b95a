package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/iburimskiy/ionized-visualizer/internal/spectrum"
	"github.com/iburimskiy/ionized-visualizer/internal/surface"
)

var ErrNoScene = errors.New("no such scene")

// Registry is the ordered scene list with exactly one active entry. It resets
// the active scene before rendering whenever it was just selected or the
// surface size changed since its last reset.
type Registry struct {
	scenes []Scene
	active int

	ready         bool
	width, height int
}

func NewRegistry(scenes ...Scene) *Registry {
	return &Registry{scenes: scenes}
}

// Default returns the shipped scenes, Ionized Sphere first.
func Default(rng *rand.Rand) *Registry {
	rng = orRand(rng)
	return NewRegistry(NewSphere(rng), NewStarfield(rng))
}

func (r *Registry) Len() int   { return len(r.scenes) }
func (r *Registry) Index() int { return r.active }

// Active returns the active scene, or nil for an empty registry.
func (r *Registry) Active() Scene {
	if len(r.scenes) == 0 {
		return nil
	}
	return r.scenes[r.active]
}

// Label formats the active scene as "i/N: Name".
func (r *Registry) Label() string {
	s := r.Active()
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d: %s", r.active+1, len(r.scenes), s.Name())
}

func (r *Registry) Select(i int) error {
	if i < 0 || i >= len(r.scenes) {
		return fmt.Errorf("%w: index %d of %d", ErrNoScene, i, len(r.scenes))
	}
	r.active = i
	r.ready = false
	return nil
}

func (r *Registry) Next() { r.step(1) }
func (r *Registry) Prev() { r.step(-1) }

func (r *Registry) step(dir int) {
	n := len(r.scenes)
	if n == 0 {
		return
	}
	r.active = ((r.active+dir)%n + n) % n
	r.ready = false
}

// Render draws one tick of the active scene on dst.
func (r *Registry) Render(dst surface.Surface, frame spectrum.Frame) {
	s := r.Active()
	if s == nil {
		return
	}
	w, h := dst.Size()
	if !r.ready || w != r.width || h != r.height {
		s.Reset(w, h)
		r.width, r.height = w, h
		r.ready = true
	}
	s.Render(dst, frame)
}
