package wriggle

import (
	"math"

	"github.com/tanema/gween/ease"
)

// frame maps creature-local coordinates (x forward, y to the creature's
// right) into world space.
type frame struct {
	ox, oy   float64
	cos, sin float64
}

func newFrame(x, y, angle float64) frame {
	return frame{ox: x, oy: y, cos: math.Cos(angle), sin: math.Sin(angle)}
}

func (f frame) at(lx, ly float64) Vec2 {
	return Vec2{
		X: f.ox + lx*f.cos - ly*f.sin,
		Y: f.oy + lx*f.sin + ly*f.cos,
	}
}

// taper maps a body position u in [0, 1] (head to tail) to a scale that
// falls from 1 to end along the easing curve fn.
func taper(fn ease.TweenFunc, u, end float64) float64 {
	return float64(fn(float32(clamp01(u)), 1, float32(end-1), 1))
}

// bodyU returns joint i's normalized position along a chain of n joints.
func bodyU(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// perpendicular returns the unit left-perpendicular of the segment from a
// to b. Degenerate segments point up.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

func fillTriangle(s Surface, a, b, c Vec2, p Paint) {
	path := NewPath()
	path.MoveTo(a.X, a.Y)
	path.LineTo(b.X, b.Y)
	path.LineTo(c.X, c.Y)
	path.Close()
	s.FillPath(path, p)
}

// spinePath builds an open polyline through the joints.
func spinePath(path *Path, joints []Joint) *Path {
	path.Reset()
	for i := range joints {
		if i == 0 {
			path.MoveTo(joints[i].X, joints[i].Y)
			continue
		}
		path.LineTo(joints[i].X, joints[i].Y)
	}
	return path
}

// ribStyle shapes the rib fan shared by the snake and the dragon.
type ribStyle struct {
	First   int     // first joint that carries ribs
	Stride  int     // joints between rib pairs
	Length  float64 // rib length at the head end
	MinSize float64 // length scale at the tail
	Bend    float64 // tailward sweep of the curve control, relative to length
	Width   float64
	Alpha   float64 // alpha at the head end; fades to zero at the tail
	Color   Color
	Breath  float64 // breathing amplitude, relative to length
}

// drawRibs strokes a pair of quadratic ribs perpendicular to the local
// tangent at every Stride-th joint. t is the creature clock in ms; the
// breathing wobble travels down the body with a 0.5 rad phase step.
func drawRibs(s Surface, joints []Joint, st ribStyle, t float64) {
	n := len(joints)
	stride := max(1, st.Stride)
	path := NewPath()
	for i := st.First; i < n; i += stride {
		j := joints[i]
		u := bodyU(i, n)
		breath := 1 + st.Breath*math.Sin(t/250+float64(i)*0.5)
		length := st.Length * taper(ease.OutQuad, u, st.MinSize) * breath
		alpha := st.Alpha * (1 - u)
		if alpha <= 0 || length <= 0 {
			continue
		}
		nx, ny := -math.Sin(j.Angle), math.Cos(j.Angle)
		if i > 0 {
			prev := joints[i-1]
			nx, ny = perpendicular(Vec2{j.X, j.Y}, Vec2{prev.X, prev.Y})
		}
		bx, by := -ny, nx // tailward
		for _, side := range [2]float64{-1, 1} {
			px, py := side*nx, side*ny
			ex := j.X + px*length + bx*length*st.Bend
			ey := j.Y + py*length + by*length*st.Bend
			cx := j.X + px*length*0.7
			cy := j.Y + py*length*0.7
			path.Reset()
			path.MoveTo(j.X, j.Y)
			path.QuadTo(cx, cy, ex, ey)
			s.StrokePath(path, st.Width*(1-u*0.5), Solid(st.Color.WithAlpha(alpha)))
		}
	}
}

// mouthOpening combines an idle hiss with proximity to the target: the
// closer the target, the wider the jaw.
func mouthOpening(t, dist, idle, hissMs, reach, wide float64) float64 {
	hiss := idle * (0.5 + 0.5*math.Sin(t/hissMs))
	near := wide * (1 - clamp01(dist/reach))
	return hiss + near
}
