package wriggle

import "math"

// FishConfig tunes the rigid-body swimmer shared by fish and koi.
type FishConfig struct {
	Length float64 `toml:"length"`
	Width  float64 `toml:"width"`
	// Thrust is the forward acceleration per 60 Hz frame at full range.
	Thrust float64 `toml:"thrust"`
	// ThrustDist is the target distance at which thrust peaks.
	ThrustDist float64 `toml:"thrust_dist"`
	// TurnGain is the heading smoothing gain.
	TurnGain float64 `toml:"turn_gain"`
	// Friction is the per-frame velocity multiplier.
	Friction float64 `toml:"friction"`
}

// fishLook is the palette and body detail of one swimmer variant.
type fishLook struct {
	bodyLight Color
	bodyDark  Color
	fin       Color
	tail      Color
	spot      Color
	spots     bool
	eyeWhite  Color
	bubble    Color
}

var (
	fishPalette = fishLook{
		bodyLight: RGB(130, 200, 255),
		bodyDark:  RGB(30, 80, 160),
		fin:       RGB(90, 160, 240).WithAlpha(0.75),
		tail:      RGB(70, 140, 230).WithAlpha(0.85),
		eyeWhite:  RGB(245, 250, 255),
		bubble:    RGB(190, 235, 255),
	}
	koiPalette = fishLook{
		bodyLight: RGB(255, 250, 240),
		bodyDark:  RGB(230, 215, 200),
		fin:       RGB(255, 235, 220).WithAlpha(0.6),
		tail:      RGB(255, 225, 205).WithAlpha(0.7),
		spot:      RGB(235, 80, 30).WithAlpha(0.9),
		spots:     true,
		eyeWhite:  RGB(255, 255, 255),
		bubble:    RGB(220, 240, 255),
	}
)

const (
	fishEmitChance = 0.2
	fishEmitMax    = 0.5
)

// Fish is a single rigid body that steers toward the target, thrusts
// forward and coasts under friction. Koi share the model with a different
// look.
type Fish struct {
	kind   Kind
	config FishConfig
	look   *fishLook

	X, Y   float64
	VX, VY float64
	Angle  float64
	time   float64 // seconds
}

// NewFish builds a fish at rest at (cx, cy).
func NewFish(cfg FishConfig, cx, cy float64) *Fish {
	return &Fish{kind: KindFish, config: cfg, look: &fishPalette, X: cx, Y: cy}
}

// NewKoi builds a koi at rest at (cx, cy).
func NewKoi(cfg FishConfig, cx, cy float64) *Fish {
	return &Fish{kind: KindKoi, config: cfg, look: &koiPalette, X: cx, Y: cy}
}

func (f *Fish) Kind() Kind { return f.kind }

func (f *Fish) Position() Vec2 { return Vec2{f.X, f.Y} }

// Speed returns the current speed in pixels per frame.
func (f *Fish) Speed() float64 { return math.Hypot(f.VX, f.VY) }

func (f *Fish) Update(dt, tx, ty, speed float64) {
	cfg := &f.config
	f.time += dt
	step := frameStep(dt)

	dist, dir := distance(f.X, f.Y, tx, ty)
	f.Angle = LerpAngle(f.Angle, dir, math.Min(1, dt*cfg.TurnGain))

	reach := cfg.ThrustDist
	if reach <= 0 {
		reach = minDistance
	}
	accel := cfg.Thrust * clamp01(dist/reach) * speed
	f.VX += math.Cos(f.Angle) * accel * step
	f.VY += math.Sin(f.Angle) * accel * step

	drag := math.Pow(cfg.Friction, step)
	f.VX *= drag
	f.VY *= drag

	f.X += f.VX * step
	f.Y += f.VY * step
}

func (f *Fish) Draw(s Surface) {
	L, W := f.config.Length, f.config.Width
	fr := newFrame(f.X, f.Y, f.Angle)
	t := f.time
	look := f.look

	// Tail.
	swing := math.Sin(t*8) * 0.35
	root := fr.at(-L*0.42, 0)
	ctrl := fr.at(-L*0.62, swing*W*0.5)
	upper := fr.at(-L*0.88, -W*0.55+swing*W)
	notch := fr.at(-L*0.74, swing*W)
	lower := fr.at(-L*0.88, W*0.55+swing*W)
	tail := NewPath()
	tail.MoveTo(root.X, root.Y)
	tail.QuadTo(ctrl.X, ctrl.Y, upper.X, upper.Y)
	tail.QuadTo(notch.X, notch.Y, lower.X, lower.Y)
	tail.QuadTo(ctrl.X, ctrl.Y, root.X, root.Y)
	tail.Close()
	s.FillPath(tail, Solid(look.tail))

	// Pectoral fins paddle out of phase.
	for _, side := range [2]float64{-1, 1} {
		flap := math.Sin(t*6+side) * 0.3
		base := fr.at(L*0.12, side*W*0.32)
		c := fr.at(L*0.02, side*W*(0.95+flap))
		tip := fr.at(-L*0.14, side*W*(0.8+flap*0.6))
		back := fr.at(-L*0.04, side*W*0.3)
		fin := NewPath()
		fin.MoveTo(base.X, base.Y)
		fin.QuadTo(c.X, c.Y, tip.X, tip.Y)
		fin.LineTo(back.X, back.Y)
		fin.Close()
		s.FillPath(fin, Solid(look.fin))
	}

	// Dorsal ridge.
	sway := math.Sin(t*5) * W * 0.12
	d0 := fr.at(L*0.2, 0)
	d1 := fr.at(L*0.05, sway-W*0.05)
	d2 := fr.at(-L*0.15, sway+W*0.05)
	d3 := fr.at(-L*0.35, sway*0.5)
	dorsal := NewPath()
	dorsal.MoveTo(d0.X, d0.Y)
	dorsal.CubicTo(d1.X, d1.Y, d2.X, d2.Y, d3.X, d3.Y)
	s.StrokePath(dorsal, math.Max(1.5, W*0.12), Solid(look.fin))

	// Body.
	hl := fr.at(L*0.1, -W*0.1)
	g := NewRadialGradient(hl.X, hl.Y, 0, L*0.55,
		GradientStop{0, look.bodyLight},
		GradientStop{1, look.bodyDark},
	)
	s.FillEllipse(f.X, f.Y, L*0.5, W*0.5, f.Angle, Paint{Gradient: g})

	if look.spots {
		f.drawSpots(s, fr, L, W)
	}

	// Eyes: white, iris, highlight.
	for _, side := range [2]float64{-1, 1} {
		e := fr.at(L*0.3, side*W*0.24)
		s.FillCircle(e.X, e.Y, W*0.12, Solid(look.eyeWhite))
		s.FillCircle(e.X, e.Y, W*0.075, Solid(RGB(15, 20, 30)))
		h := fr.at(L*0.3+W*0.03, side*W*0.24-W*0.03)
		s.FillCircle(h.X, h.Y, W*0.03, Solid(ColorWhite))
	}
}

// drawSpots paints the koi's two blotches as closed cubic shapes.
func (f *Fish) drawSpots(s Surface, fr frame, L, W float64) {
	spot := func(cx, cy, rx, ry float64) {
		a := fr.at(cx-rx, cy)
		b := fr.at(cx+rx, cy)
		p := NewPath()
		p.MoveTo(a.X, a.Y)
		c1 := fr.at(cx-rx*0.6, cy-ry*1.3)
		c2 := fr.at(cx+rx*0.8, cy-ry)
		p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, b.X, b.Y)
		c3 := fr.at(cx+rx*0.5, cy+ry*1.2)
		c4 := fr.at(cx-rx*0.9, cy+ry*0.9)
		p.CubicTo(c3.X, c3.Y, c4.X, c4.Y, a.X, a.Y)
		p.Close()
		s.FillPath(p, Solid(f.look.spot))
	}
	spot(L*0.18, -W*0.05, L*0.13, W*0.22)
	spot(-L*0.16, W*0.08, L*0.1, W*0.18)
}

// EmitParticles occasionally releases a bubble behind the fish.
func (f *Fish) EmitParticles(dt float64, field *ParticleField) {
	if !field.Chance(math.Min(fishEmitMax, dt*60*fishEmitChance)) {
		return
	}
	rng := field.Rand()
	back := f.Angle + math.Pi
	jx := (randFloat(rng) - 0.5) * 8
	jy := (randFloat(rng) - 0.5) * 8
	bx := f.X + math.Cos(back)*f.config.Length*0.5 + jx
	by := f.Y + math.Sin(back)*f.config.Length*0.5 + jy
	spread := back + (randFloat(rng)-0.5)*0.6
	sp := Range{0.2, 0.7}.Random(rng)
	vx, vy := math.Cos(spread)*sp, math.Sin(spread)*sp
	c := f.look.bubble
	field.Add(NewParticle(rng, bx, by, ParticleOptions{
		VX:    &vx,
		VY:    &vy,
		Size:  Float(Range{1.5, 3.5}.Random(rng)),
		Life:  Float(Range{60, 120}.Random(rng)),
		Color: &c,
	}))
}
