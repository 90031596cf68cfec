package wriggle

import "math"

// LimbKind selects a limb's angular policy.
type LimbKind uint8

const (
	LimbGeneric LimbKind = iota // hip out, knee in, foot out
	LimbFore                    // front legs: shorter reach, sharper elbow
	LimbHind                    // back legs: wide hip, softer knee
	LimbWing                    // flap-and-fold cycle instead of a gait
)

func (k LimbKind) String() string {
	switch k {
	case LimbGeneric:
		return "generic"
	case LimbFore:
		return "fore"
	case LimbHind:
		return "hind"
	case LimbWing:
		return "wing"
	}
	return "unknown"
}

// gaitAngles holds the outward/inward bends of a legged limb, each
// multiplied by the limb's side sign.
type gaitAngles struct {
	hip, knee, foot float64
}

var gaits = [...]gaitAngles{
	LimbGeneric: {hip: math.Pi / 2, knee: -1.2, foot: -0.8},
	LimbFore:    {hip: 1.35, knee: -1.4, foot: -0.7},
	LimbHind:    {hip: 1.75, knee: -1.0, foot: -0.9},
}

const (
	gaitSway      = 0.25  // max sway amplitude in radians
	gaitSwayDist  = 200.0 // travel distance at which sway peaks
	gaitPeriod    = 400.0 // ms per radian of sway phase
	gaitPhaseStep = 0.5   // sway phase offset per segment

	wingPeriod     = 600.0 // ms per radian of flap phase
	wingSweep      = 1.4
	wingFold       = 0.6
	wingFlutter    = 0.08
	wingFlutterMs  = 90.0
	clawSpreadRad  = 0.9
	clawLengthFrac = 0.45 // claw length relative to the tip segment
)

// LimbStyle controls how a limb is drawn.
type LimbStyle struct {
	Width    float64
	Color    Color
	Membrane Color // wings only
	Claw     Color
}

// LimbSystem is a chain of bones hanging off one node of a skeleton. It
// stores the root as an index into the skeleton's joints, so the limb is
// only meaningful together with the skeleton that created it.
type LimbSystem struct {
	Kind     LimbKind
	Root     int
	Side     float64 // +1 or -1; mirrors the policy left/right
	Claws    int
	Segments []Bone
}

// NewLimbSystem builds n segments of length segLen rooted at joint root.
// Segment 0 hangs off the root joint, segment i off segment i-1.
func NewLimbSystem(kind LimbKind, root, n int, segLen, side float64, claws int) *LimbSystem {
	l := &LimbSystem{Kind: kind, Root: root, Side: side, Claws: claws}
	if n > 0 {
		l.Segments = make([]Bone, n)
	}
	for i := range l.Segments {
		l.Segments[i] = Bone{Length: segLen, Parent: i - 1}
	}
	return l
}

// parent returns the anchor position and angle segment i hangs off.
func (l *LimbSystem) parent(i int, joints []Joint) (x, y, angle float64) {
	if p := l.Segments[i].Parent; p >= 0 {
		b := &l.Segments[p]
		return b.X, b.Y, b.Angle
	}
	if l.Root < 0 || l.Root >= len(joints) {
		return 0, 0, 0
	}
	j := &joints[l.Root]
	return j.X, j.Y, j.Angle
}

// Update poses every segment for time t (ms) and travel distance moveDist.
// Sway and flutter scale with moveDist, so the gait widens as the creature
// hurries toward its target.
func (l *LimbSystem) Update(joints []Joint, t, moveDist float64) {
	travel := math.Min(1, moveDist/gaitSwayDist)
	for i := range l.Segments {
		px, py, pa := l.parent(i, joints)
		seg := &l.Segments[i]
		seg.Angle = pa + l.bend(i, t, travel)
		seg.Follow(px, py)
	}
}

// bend returns segment i's angle relative to its parent.
func (l *LimbSystem) bend(i int, t, travel float64) float64 {
	fi := float64(i)
	if l.Kind == LimbWing {
		flap := t / wingPeriod
		flutter := wingFlutter * travel * math.Sin(t/wingFlutterMs+fi)
		if i == 0 {
			return l.Side*(math.Pi/2+wingSweep*math.Sin(flap)) + flutter
		}
		return -l.Side*wingFold*math.Sin(flap+math.Pi/2) + flutter
	}

	g := gaits[LimbGeneric]
	if int(l.Kind) < len(gaits) {
		g = gaits[l.Kind]
	}
	var base float64
	switch i {
	case 0:
		base = l.Side * g.hip
	case 1:
		base = l.Side * g.knee
	default:
		base = l.Side * g.foot
	}
	return base + gaitSway*travel*math.Sin(t/gaitPeriod+fi*gaitPhaseStep)
}

// Points returns the limb polyline: root joint followed by every segment end.
func (l *LimbSystem) Points(joints []Joint) []Vec2 {
	if len(l.Segments) == 0 || l.Root < 0 || l.Root >= len(joints) {
		return nil
	}
	pts := make([]Vec2, 0, len(l.Segments)+1)
	pts = append(pts, Vec2{joints[l.Root].X, joints[l.Root].Y})
	for i := range l.Segments {
		pts = append(pts, Vec2{l.Segments[i].X, l.Segments[i].Y})
	}
	return pts
}

// Tip returns the last segment, or nil when the limb has none.
func (l *LimbSystem) Tip() *Bone {
	if len(l.Segments) == 0 {
		return nil
	}
	return &l.Segments[len(l.Segments)-1]
}

// Draw strokes the limb, fills the membrane for wings and fans the claws
// around the tip.
func (l *LimbSystem) Draw(s Surface, joints []Joint, style LimbStyle) {
	pts := l.Points(joints)
	if len(pts) < 2 {
		return
	}
	if l.Kind == LimbWing {
		l.drawMembrane(s, pts, joints[l.Root].Angle, style)
	}

	path := NewPath()
	path.Polyline(pts)
	s.StrokePath(path, style.Width, Solid(style.Color))

	if l.Claws > 0 {
		l.drawClaws(s, style)
	}
}

// drawMembrane traces quadratic curves through the midpoints between
// consecutive wing bones out to the tip, then sags back to the root
// behind the wing.
func (l *LimbSystem) drawMembrane(s Surface, pts []Vec2, bodyAngle float64, style LimbStyle) {
	root := pts[0]
	path := NewPath()
	path.MoveTo(root.X, root.Y)
	for i := 1; i < len(pts)-1; i++ {
		mx := (pts[i].X + pts[i+1].X) / 2
		my := (pts[i].Y + pts[i+1].Y) / 2
		path.QuadTo(pts[i].X, pts[i].Y, mx, my)
	}
	tip := pts[len(pts)-1]
	path.LineTo(tip.X, tip.Y)

	var span float64
	for i := range l.Segments {
		span += l.Segments[i].Length
	}
	// Trailing edge control point: midway along the wing, pushed tailward.
	mid := pts[len(pts)/2]
	back := bodyAngle + math.Pi
	cx := mid.X + math.Cos(back)*span*0.5
	cy := mid.Y + math.Sin(back)*span*0.5
	path.QuadTo(cx, cy, root.X, root.Y)
	path.Close()

	s.FillPath(path, Solid(style.Membrane))
}

func (l *LimbSystem) drawClaws(s Surface, style LimbStyle) {
	tip := l.Tip()
	n := l.Claws
	length := tip.Length * clawLengthFrac
	step := 0.0
	if n > 1 {
		step = clawSpreadRad / float64(n-1)
	}
	for k := 0; k < n; k++ {
		a := tip.Angle + (float64(k)-float64(n-1)/2)*step
		s.StrokeLine(tip.X, tip.Y, tip.X+math.Cos(a)*length, tip.Y+math.Sin(a)*length,
			math.Max(1, style.Width*0.4), Solid(style.Claw))
	}
}
