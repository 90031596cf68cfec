package wriggle

import "math"

// PathOp identifies a path command.
type PathOp uint8

const (
	PathMoveTo  PathOp = iota // start a new subpath
	PathLineTo                // straight segment
	PathQuadTo                // quadratic Bézier, one control point
	PathCubicTo               // cubic Bézier, two control points
	PathClose                 // close the current subpath
)

// PathSegment is a single recorded path command. P holds the control
// points followed by the end point; unused entries are zero.
type PathSegment struct {
	Op PathOp
	P  [3]Vec2
}

// Path is an immediate-mode vector path. Build one per draw call; Reset
// lets callers reuse the backing buffer across frames.
type Path struct {
	segs  []PathSegment
	start Vec2
	cur   Vec2
	open  bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// Reset clears the path while keeping its capacity.
func (p *Path) Reset() {
	p.segs = p.segs[:0]
	p.open = false
}

// Segments returns the recorded commands. The slice MUST NOT be mutated.
func (p *Path) Segments() []PathSegment {
	return p.segs
}

// Empty reports whether the path has no drawable commands.
func (p *Path) Empty() bool {
	return len(p.segs) == 0
}

// MoveTo begins a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Vec2{x, y}
	p.segs = append(p.segs, PathSegment{Op: PathMoveTo, P: [3]Vec2{pt}})
	p.start, p.cur, p.open = pt, pt, true
}

// LineTo adds a straight segment. Without a current point it acts as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	pt := Vec2{x, y}
	p.segs = append(p.segs, PathSegment{Op: PathLineTo, P: [3]Vec2{pt}})
	p.cur = pt
}

// QuadTo adds a quadratic Bézier with control (cx, cy) ending at (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.open {
		p.MoveTo(cx, cy)
	}
	pt := Vec2{x, y}
	p.segs = append(p.segs, PathSegment{Op: PathQuadTo, P: [3]Vec2{{cx, cy}, pt}})
	p.cur = pt
}

// CubicTo adds a cubic Bézier with controls (c1x, c1y), (c2x, c2y) ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.open {
		p.MoveTo(c1x, c1y)
	}
	pt := Vec2{x, y}
	p.segs = append(p.segs, PathSegment{Op: PathCubicTo, P: [3]Vec2{{c1x, c1y}, {c2x, c2y}, pt}})
	p.cur = pt
}

// Close joins the current point back to the subpath start.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.segs = append(p.segs, PathSegment{Op: PathClose, P: [3]Vec2{p.start}})
	p.cur = p.start
	p.open = false
}

// arcSegments is the number of line segments used per full turn when arcs
// and ellipses are expanded into lines.
const arcSegments = 32

// Arc appends a circular arc centered at (cx, cy) from angle a0 to a1
// (radians, clockwise in screen space when a1 > a0). Like a canvas arc, a
// line connects the current point to the arc start.
func (p *Path) Arc(cx, cy, r, a0, a1 float64) {
	p.EllipseArc(cx, cy, r, r, 0, a0, a1)
}

// EllipseArc appends an arc of a rotated ellipse.
func (p *Path) EllipseArc(cx, cy, rx, ry, rotation, a0, a1 float64) {
	sweep := a1 - a0
	n := int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * arcSegments))
	if n < 1 {
		n = 1
	}
	cr, sr := math.Cos(rotation), math.Sin(rotation)
	for i := 0; i <= n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		ex, ey := math.Cos(a)*rx, math.Sin(a)*ry
		x := cx + ex*cr - ey*sr
		y := cy + ex*sr + ey*cr
		if i == 0 && !p.open {
			p.MoveTo(x, y)
			continue
		}
		p.LineTo(x, y)
	}
}

// Ellipse appends a closed rotated ellipse as its own subpath.
func (p *Path) Ellipse(cx, cy, rx, ry, rotation float64) {
	p.open = false
	p.EllipseArc(cx, cy, rx, ry, rotation, 0, 2*math.Pi)
	p.Close()
}

// Circle appends a closed circle as its own subpath.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r, 0)
}

// Polyline appends an open polyline through pts.
func (p *Path) Polyline(pts []Vec2) {
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
}

// curveSegments is the subdivision count used when flattening Béziers.
const curveSegments = 12

// Flatten converts the path into polylines, one per subpath. Closed
// subpaths end with a copy of their first point. buf is reused when large
// enough.
func (p *Path) Flatten(buf [][]Vec2) [][]Vec2 {
	out := buf[:0]
	var cur []Vec2
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	var last Vec2
	for _, s := range p.segs {
		switch s.Op {
		case PathMoveTo:
			flush()
			cur = append(cur, s.P[0])
			last = s.P[0]
		case PathLineTo:
			cur = append(cur, s.P[0])
			last = s.P[0]
		case PathQuadTo:
			a, c, b := last, s.P[0], s.P[1]
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				u := 1 - t
				cur = append(cur, Vec2{
					X: u*u*a.X + 2*u*t*c.X + t*t*b.X,
					Y: u*u*a.Y + 2*u*t*c.Y + t*t*b.Y,
				})
			}
			last = b
		case PathCubicTo:
			a, c1, c2, b := last, s.P[0], s.P[1], s.P[2]
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				u := 1 - t
				u2, t2 := u*u, t*t
				cur = append(cur, Vec2{
					X: u2*u*a.X + 3*u2*t*c1.X + 3*u*t2*c2.X + t2*t*b.X,
					Y: u2*u*a.Y + 3*u2*t*c1.Y + 3*u*t2*c2.Y + t2*t*b.Y,
				})
			}
			last = b
		case PathClose:
			if len(cur) > 0 {
				cur = append(cur, cur[0])
				last = cur[0]
			}
			flush()
		}
	}
	flush()
	return out
}

// Bounds returns the axis-aligned bounds of the path's points, control
// points included.
func (p *Path) Bounds() Rect {
	if len(p.segs) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range p.segs {
		n := 1
		switch s.Op {
		case PathQuadTo:
			n = 2
		case PathCubicTo:
			n = 3
		}
		for i := 0; i < n; i++ {
			pt := s.P[i]
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
