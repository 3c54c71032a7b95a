package surface

import "image/color"

type OpKind int

const (
	OpFillRect OpKind = iota
	OpRadialGradient
	OpStrokeLine
	OpFillCircle
	OpComposite
)

// Op is one recorded Surface call. Only the fields relevant to Kind are set;
// Mode is the composite mode in effect when the call was made.
type Op struct {
	Kind OpKind

	X0, Y0 float64 // rect origin, line start, circle/gradient center
	X1, Y1 float64 // line end
	W, H   float64 // rect size
	R      float64 // circle/gradient radius
	Width  float64 // stroke width

	Color color.Color
	Outer color.Color
	Mode  CompositeMode
}

// Recorder is a Surface that remembers every call instead of rasterizing.
type Recorder struct {
	Width, Height int
	Ops           []Op

	mode CompositeMode
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X0: x, Y0: y, W: w, H: h, Color: c, Mode: r.mode})
}

func (r *Recorder) FillRadialGradient(cx, cy, radius float64, inner, outer color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpRadialGradient, X0: cx, Y0: cy, R: radius, Color: inner, Outer: outer, Mode: r.mode})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: c, Mode: r.mode})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, X0: cx, Y0: cy, R: radius, Color: c, Mode: r.mode})
}

func (r *Recorder) SetComposite(mode CompositeMode) {
	r.mode = mode
	r.Ops = append(r.Ops, Op{Kind: OpComposite, Mode: mode})
}

// Composite reports the mode currently in effect.
func (r *Recorder) Composite() CompositeMode { return r.mode }

// Count returns how many recorded ops are of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded ops of the given kind, in call order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Clear drops the recorded ops but keeps size and composite mode.
func (r *Recorder) Clear() { r.Ops = r.Ops[:0] }
