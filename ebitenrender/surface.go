// Package ebitenrender draws wriggle scenes with Ebitengine and adapts its
// mouse, touch and keyboard input to scene controls.
package ebitenrender

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/wriggle"
)

const (
	ellipseSegments = 32
	gradientRings   = 8
	glowPasses      = 3
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type drawState struct {
	alpha     float64
	blur      float64
	blurColor wriggle.Color
}

// Surface implements wriggle.Surface on top of an *ebiten.Image. Paths are
// tessellated with the vector package; gradients are evaluated per vertex
// and blur is approximated with widened translucent passes.
type Surface struct {
	dst   *ebiten.Image
	state drawState
	stack []drawState

	verts []ebiten.Vertex
	inds  []uint16
	flat  [][]wriggle.Vec2
	line  wriggle.Path
}

// NewSurface returns a surface drawing into dst.
func NewSurface(dst *ebiten.Image) *Surface {
	return &Surface{dst: dst, state: drawState{alpha: 1}}
}

// Reset retargets the surface and clears saved state. Call once per frame.
func (s *Surface) Reset(dst *ebiten.Image) {
	s.dst = dst
	s.state = drawState{alpha: 1}
	s.stack = s.stack[:0]
}

// Target returns the image being drawn into.
func (s *Surface) Target() *ebiten.Image {
	return s.dst
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.state)
}

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) SetAlpha(a float64) {
	s.state.alpha = math.Max(0, math.Min(1, a))
}

func (s *Surface) SetBlur(radius float64, c wriggle.Color) {
	s.state.blur = radius
	s.state.blurColor = c
}

func (s *Surface) FillCircle(cx, cy, r float64, p wriggle.Paint) {
	s.FillEllipse(cx, cy, r, r, 0, p)
}

func (s *Surface) FillEllipse(cx, cy, rx, ry, rotation float64, p wriggle.Paint) {
	if rx <= 0 || ry <= 0 {
		return
	}
	s.glow(func(spread, alpha float64) {
		s.ellipseMesh(cx, cy, rx+spread, ry+spread, rotation, wriggle.Solid(s.state.blurColor), alpha)
	})
	s.ellipseMesh(cx, cy, rx, ry, rotation, p, s.state.alpha)
}

func (s *Surface) FillPath(path *wriggle.Path, p wriggle.Paint) {
	if path == nil || path.Empty() {
		return
	}
	s.glow(func(spread, alpha float64) {
		s.stroke(path, spread*2, wriggle.Solid(s.state.blurColor), alpha)
	})
	var vp vector.Path
	appendPath(&vp, path)
	// vector.FillPath takes one color; gradients need the vertices to color each one.
	s.verts, s.inds = vp.AppendVerticesAndIndicesForFilling(s.verts[:0], s.inds[:0])
	s.submit(p, s.state.alpha, ebiten.FillRuleNonZero)
}

func (s *Surface) StrokePath(path *wriggle.Path, width float64, p wriggle.Paint) {
	if path == nil || path.Empty() || width <= 0 {
		return
	}
	s.glow(func(spread, alpha float64) {
		s.stroke(path, width+spread*2, wriggle.Solid(s.state.blurColor), alpha)
	})
	s.stroke(path, width, p, s.state.alpha)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, p wriggle.Paint) {
	s.line.Reset()
	s.line.MoveTo(x0, y0)
	s.line.LineTo(x1, y1)
	s.StrokePath(&s.line, width, p)
}

// glow runs fn once per blur pass, widest and faintest first.
func (s *Surface) glow(fn func(spread, alpha float64)) {
	if s.state.blur <= 0 || s.state.blurColor.A <= 0 {
		return
	}
	for i := glowPasses; i >= 1; i-- {
		spread := s.state.blur * float64(i) / glowPasses
		fn(spread, s.state.alpha*s.state.blurColor.A/(glowPasses+1))
	}
}

func (s *Surface) stroke(path *wriggle.Path, width float64, p wriggle.Paint, alpha float64) {
	var vp vector.Path
	appendPath(&vp, path)
	op := &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	// Tessellated by hand for per-vertex gradient colors, as in FillPath.
	s.verts, s.inds = vp.AppendVerticesAndIndicesForStroke(s.verts[:0], s.inds[:0], op)
	s.submit(p, alpha, ebiten.FillRuleFillAll)
}

// ellipseMesh emits a ring mesh so radial gradients resolve inside the
// shape, not only at its rim.
func (s *Surface) ellipseMesh(cx, cy, rx, ry, rotation float64, p wriggle.Paint, alpha float64) {
	rings := 1
	if p.Gradient != nil {
		rings = gradientRings
	}
	sin, cos := math.Sincos(rotation)
	s.verts = append(s.verts[:0], ebiten.Vertex{DstX: float32(cx), DstY: float32(cy)})
	s.inds = s.inds[:0]
	for ring := 1; ring <= rings; ring++ {
		f := float64(ring) / float64(rings)
		for i := 0; i < ellipseSegments; i++ {
			a := 2 * math.Pi * float64(i) / ellipseSegments
			lx, ly := math.Cos(a)*rx*f, math.Sin(a)*ry*f
			s.verts = append(s.verts, ebiten.Vertex{
				DstX: float32(cx + lx*cos - ly*sin),
				DstY: float32(cy + lx*sin + ly*cos),
			})
		}
	}
	base := func(ring int) uint16 { return uint16(1 + (ring-1)*ellipseSegments) }
	for i := 0; i < ellipseSegments; i++ {
		j := (i + 1) % ellipseSegments
		s.inds = append(s.inds, 0, base(1)+uint16(i), base(1)+uint16(j))
	}
	for ring := 2; ring <= rings; ring++ {
		in, out := base(ring-1), base(ring)
		for i := 0; i < ellipseSegments; i++ {
			j := (i + 1) % ellipseSegments
			a, b := in+uint16(i), in+uint16(j)
			c, d := out+uint16(i), out+uint16(j)
			s.inds = append(s.inds, a, c, d, a, d, b)
		}
	}
	s.submit(p, alpha, ebiten.FillRuleFillAll)
}

// submit colors the pending vertices from the paint and draws them.
func (s *Surface) submit(p wriggle.Paint, alpha float64, rule ebiten.FillRule) {
	if len(s.inds) == 0 || s.dst == nil {
		return
	}
	for i := range s.verts {
		v := &s.verts[i]
		c := p.At(float64(v.DstX), float64(v.DstY))
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(c.R)
		v.ColorG = float32(c.G)
		v.ColorB = float32(c.B)
		v.ColorA = float32(c.A * alpha)
	}
	op := &ebiten.DrawTrianglesOptions{
		FillRule:  rule,
		AntiAlias: true,
	}
	s.dst.DrawTriangles(s.verts, s.inds, whiteSubImage, op)
}

// appendPath copies a wriggle path into a vector path.
func appendPath(dst *vector.Path, p *wriggle.Path) {
	for _, seg := range p.Segments() {
		switch seg.Op {
		case wriggle.PathMoveTo:
			dst.MoveTo(float32(seg.P[0].X), float32(seg.P[0].Y))
		case wriggle.PathLineTo:
			dst.LineTo(float32(seg.P[0].X), float32(seg.P[0].Y))
		case wriggle.PathQuadTo:
			dst.QuadTo(float32(seg.P[0].X), float32(seg.P[0].Y), float32(seg.P[1].X), float32(seg.P[1].Y))
		case wriggle.PathCubicTo:
			dst.CubicTo(float32(seg.P[0].X), float32(seg.P[0].Y), float32(seg.P[1].X), float32(seg.P[1].Y),
				float32(seg.P[2].X), float32(seg.P[2].Y))
		case wriggle.PathClose:
			dst.Close()
		}
	}
}

var _ wriggle.Surface = (*Surface)(nil)
