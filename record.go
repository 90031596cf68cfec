package wriggle

// DrawOpKind identifies a recorded draw call.
type DrawOpKind uint8

const (
	OpFillCircle DrawOpKind = iota
	OpFillEllipse
	OpFillPath
	OpStrokePath
	OpStrokeLine
)

func (k DrawOpKind) String() string {
	switch k {
	case OpFillCircle:
		return "fill-circle"
	case OpFillEllipse:
		return "fill-ellipse"
	case OpFillPath:
		return "fill-path"
	case OpStrokePath:
		return "stroke-path"
	case OpStrokeLine:
		return "stroke-line"
	}
	return "unknown"
}

// DrawOp is one recorded draw call with the surface state it was issued
// under. Points holds the call's anchor points: the center for circles and
// ellipses, both ends for lines, and the flattened outline for paths.
type DrawOp struct {
	Kind       DrawOpKind
	Points     []Vec2
	Radius     Vec2 // rx, ry for circles and ellipses
	Width      float64
	Paint      Paint
	Alpha      float64
	BlurRadius float64
}

type surfaceState struct {
	alpha     float64
	blur      float64
	blurColor Color
}

// RecordingSurface is a Surface that keeps every draw call in memory
// instead of rasterizing it. Used for tests and per-frame draw statistics.
// Create one with NewRecordingSurface; the zero value records at alpha 0.
type RecordingSurface struct {
	Ops   []DrawOp
	state surfaceState
	stack []surfaceState
	// KeepPoints controls whether path outlines are flattened and stored.
	// Counting-only callers leave it off.
	KeepPoints bool
	flat       [][]Vec2
}

// NewRecordingSurface returns an empty recorder that stores path outlines.
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{state: surfaceState{alpha: 1}, KeepPoints: true}
}

// Reset drops recorded ops and restores the default state.
func (r *RecordingSurface) Reset() {
	r.Ops = r.Ops[:0]
	r.state = surfaceState{alpha: 1}
	r.stack = r.stack[:0]
}

// Count returns how many ops of the given kind were recorded.
func (r *RecordingSurface) Count(kind DrawOpKind) int {
	n := 0
	for i := range r.Ops {
		if r.Ops[i].Kind == kind {
			n++
		}
	}
	return n
}

// Depth returns the current Save nesting depth.
func (r *RecordingSurface) Depth() int {
	return len(r.stack)
}

func (r *RecordingSurface) Save() {
	r.stack = append(r.stack, r.state)
}

func (r *RecordingSurface) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *RecordingSurface) SetAlpha(a float64) {
	r.state.alpha = clamp01(a)
}

func (r *RecordingSurface) SetBlur(radius float64, c Color) {
	r.state.blur = radius
	r.state.blurColor = c
}

func (r *RecordingSurface) record(op DrawOp) {
	op.Alpha = r.state.alpha
	op.BlurRadius = r.state.blur
	r.Ops = append(r.Ops, op)
}

func (r *RecordingSurface) FillCircle(cx, cy, radius float64, p Paint) {
	r.record(DrawOp{Kind: OpFillCircle, Points: []Vec2{{cx, cy}}, Radius: Vec2{radius, radius}, Paint: p})
}

func (r *RecordingSurface) FillEllipse(cx, cy, rx, ry, rotation float64, p Paint) {
	r.record(DrawOp{Kind: OpFillEllipse, Points: []Vec2{{cx, cy}}, Radius: Vec2{rx, ry}, Paint: p})
}

func (r *RecordingSurface) FillPath(path *Path, p Paint) {
	r.record(DrawOp{Kind: OpFillPath, Points: r.outline(path), Paint: p})
}

func (r *RecordingSurface) StrokePath(path *Path, width float64, p Paint) {
	r.record(DrawOp{Kind: OpStrokePath, Points: r.outline(path), Width: width, Paint: p})
}

func (r *RecordingSurface) StrokeLine(x0, y0, x1, y1, width float64, p Paint) {
	r.record(DrawOp{Kind: OpStrokeLine, Points: []Vec2{{x0, y0}, {x1, y1}}, Width: width, Paint: p})
}

func (r *RecordingSurface) outline(path *Path) []Vec2 {
	if !r.KeepPoints || path == nil {
		return nil
	}
	r.flat = path.Flatten(r.flat)
	var pts []Vec2
	for _, poly := range r.flat {
		pts = append(pts, poly...)
	}
	return pts
}
