package wriggle

import "math"

// Surface is an immediate-mode 2D drawing target. Creatures and particles
// draw against it every frame; backends (Ebitengine, terminal, recording)
// decide how the calls are rasterized.
//
// SetAlpha and SetBlur modify every following draw until the matching
// Restore. Alpha multiplies the paint's own alpha.
type Surface interface {
	Save()
	Restore()
	SetAlpha(a float64)
	// SetBlur enables a soft glow of the given radius and color behind
	// subsequent draws. A radius of 0 disables it.
	SetBlur(radius float64, c Color)

	FillCircle(cx, cy, r float64, p Paint)
	FillEllipse(cx, cy, rx, ry, rotation float64, p Paint)
	FillPath(path *Path, p Paint)
	StrokePath(path *Path, width float64, p Paint)
	StrokeLine(x0, y0, x1, y1, width float64, p Paint)
}

// Paint is either a solid color or a gradient. A non-nil Gradient wins.
type Paint struct {
	Color    Color
	Gradient *Gradient
}

// Solid returns a paint that fills with a single color.
func Solid(c Color) Paint {
	return Paint{Color: c}
}

// At returns the paint color at (x, y).
func (p Paint) At(x, y float64) Color {
	if p.Gradient != nil {
		return p.Gradient.ColorAt(x, y)
	}
	return p.Color
}

// GradientKind selects how a gradient maps positions to offsets.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota // along the segment P0→P1
	GradientRadial                     // from radius R0 to R1 around P0
)

// GradientStop is a color at a normalized offset along the gradient.
type GradientStop struct {
	Offset float64
	Color  Color
}

// Gradient describes a linear or radial color ramp. Stops must be sorted
// by offset.
type Gradient struct {
	Kind   GradientKind
	P0, P1 Vec2
	R0, R1 float64
	Stops  []GradientStop
}

// NewLinearGradient creates a gradient running from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64, stops ...GradientStop) *Gradient {
	return &Gradient{Kind: GradientLinear, P0: Vec2{x0, y0}, P1: Vec2{x1, y1}, Stops: stops}
}

// NewRadialGradient creates a concentric gradient around (cx, cy) from
// radius r0 to r1.
func NewRadialGradient(cx, cy, r0, r1 float64, stops ...GradientStop) *Gradient {
	return &Gradient{Kind: GradientRadial, P0: Vec2{cx, cy}, R0: r0, R1: r1, Stops: stops}
}

// Offset returns the normalized, clamped gradient offset of (x, y).
func (g *Gradient) Offset(x, y float64) float64 {
	switch g.Kind {
	case GradientRadial:
		span := g.R1 - g.R0
		if span <= 0 {
			return 1
		}
		d := math.Hypot(x-g.P0.X, y-g.P0.Y)
		return clamp01((d - g.R0) / span)
	default:
		dx, dy := g.P1.X-g.P0.X, g.P1.Y-g.P0.Y
		l2 := dx*dx + dy*dy
		if l2 == 0 {
			return 0
		}
		return clamp01(((x-g.P0.X)*dx + (y-g.P0.Y)*dy) / l2)
	}
}

// ColorAt samples the gradient at (x, y).
func (g *Gradient) ColorAt(x, y float64) Color {
	return g.ColorAtOffset(g.Offset(x, y))
}

// ColorAtOffset samples the gradient at a normalized offset.
func (g *Gradient) ColorAtOffset(t float64) Color {
	n := len(g.Stops)
	switch {
	case n == 0:
		return Color{}
	case t <= g.Stops[0].Offset:
		return g.Stops[0].Color
	case t >= g.Stops[n-1].Offset:
		return g.Stops[n-1].Color
	}
	for i := 1; i < n; i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return g.Stops[n-1].Color
}
