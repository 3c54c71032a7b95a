package surface

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const gradientSegments = 64

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white returns the 1x1 white source all triangles are drawn from.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Ebiten paints onto an ebiten image. The image is expected to persist across
// frames so the scenes' translucent fades leave trails.
type Ebiten struct {
	dst  *ebiten.Image
	mode CompositeMode

	path     vector.Path
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewEbiten(dst *ebiten.Image) *Ebiten {
	white()
	return &Ebiten{dst: dst}
}

func (s *Ebiten) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Ebiten) SetComposite(mode CompositeMode) { s.mode = mode }

func (s *Ebiten) FillRect(x, y, w, h float64, c color.Color) {
	if !finite(x, y, w, h) || w <= 0 || h <= 0 {
		return
	}
	cr, cg, cb, ca := straight(c)
	s.vertices = s.vertices[:0]
	for _, p := range [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
		s.vertices = append(s.vertices, vertex(p[0], p[1], cr, cg, cb, ca))
	}
	s.indices = append(s.indices[:0], 0, 1, 2, 1, 2, 3)
	s.draw(false)
}

func (s *Ebiten) FillRadialGradient(cx, cy, r float64, inner, outer color.Color) {
	if !finite(cx, cy, r) || r <= 0 {
		return
	}
	ir, ig, ib, ia := straight(inner)
	or, og, ob, oa := straight(outer)

	s.vertices = append(s.vertices[:0], vertex(cx, cy, ir, ig, ib, ia))
	s.indices = s.indices[:0]
	for i := 0; i <= gradientSegments; i++ {
		a := 2 * math.Pi * float64(i) / gradientSegments
		s.vertices = append(s.vertices, vertex(cx+r*math.Cos(a), cy+r*math.Sin(a), or, og, ob, oa))
		if i > 0 {
			s.indices = append(s.indices, 0, uint16(i), uint16(i+1))
		}
	}
	s.draw(true)
}

func (s *Ebiten) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	if !finite(x0, y0, x1, y1, width) || width <= 0 {
		return
	}
	s.path = vector.Path{}
	s.path.MoveTo(float32(x0), float32(y0))
	s.path.LineTo(float32(x1), float32(y1))
	s.vertices, s.indices = s.path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	})
	s.paint(c)
}

func (s *Ebiten) FillCircle(cx, cy, r float64, c color.Color) {
	if !finite(cx, cy, r) || r <= 0 {
		return
	}
	s.path = vector.Path{}
	s.path.Arc(float32(cx), float32(cy), float32(r), 0, 2*math.Pi, vector.Clockwise)
	s.path.Close()
	s.vertices, s.indices = s.path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.paint(c)
}

// paint colors the pending path vertices uniformly and draws them.
func (s *Ebiten) paint(c color.Color) {
	cr, cg, cb, ca := straight(c)
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = cr
		s.vertices[i].ColorG = cg
		s.vertices[i].ColorB = cb
		s.vertices[i].ColorA = ca
	}
	s.draw(true)
}

func (s *Ebiten) draw(antialias bool) {
	if len(s.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      antialias,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		Blend:          ebiten.BlendSourceOver,
	}
	if s.mode == CompositeAdditive {
		op.Blend = ebiten.BlendLighter
	}
	s.dst.DrawTriangles(s.vertices, s.indices, white(), op)
}

func vertex(x, y float64, r, g, b, a float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: r,
		ColorG: g,
		ColorB: b,
		ColorA: a,
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
