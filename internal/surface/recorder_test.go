package surface

import (
	"image/color"
	"testing"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder(640, 480)
	var _ Surface = r

	r.FillRect(0, 0, 640, 480, color.Black)
	r.SetComposite(CompositeAdditive)
	r.FillRadialGradient(10, 20, 30, HSLA{A: 1}, HSLA{})
	r.SetComposite(CompositeNormal)
	r.StrokeLine(1, 2, 3, 4, 5, color.White)
	r.FillCircle(7, 8, 9, color.White)

	if w, h := r.Size(); w != 640 || h != 480 {
		t.Fatalf("Size: got %dx%d", w, h)
	}
	if n := r.Count(OpComposite); n != 2 {
		t.Fatalf("composite ops: got %d, want 2", n)
	}
	grads := r.Filter(OpRadialGradient)
	if len(grads) != 1 || grads[0].Mode != CompositeAdditive || grads[0].R != 30 {
		t.Fatalf("gradient: got %+v", grads)
	}
	lines := r.Filter(OpStrokeLine)
	if len(lines) != 1 || lines[0].Mode != CompositeNormal || lines[0].X1 != 3 || lines[0].Width != 5 {
		t.Fatalf("line: got %+v", lines)
	}

	r.Clear()
	if len(r.Ops) != 0 || r.Composite() != CompositeNormal {
		t.Fatalf("Clear: ops %d mode %s", len(r.Ops), r.Composite())
	}
}
