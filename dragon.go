package wriggle

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// Joint indices the dragon's limbs and wings hang off.
const (
	dragonForeRoot = 6
	dragonWingRoot = 7
	dragonHindRoot = 25
)

var (
	dragonSpineHead = RGB(190, 40, 30)
	dragonSpineTail = RGB(90, 20, 40)
	dragonBone      = RGB(235, 200, 150)
	dragonLimb      = RGB(150, 45, 35)
	dragonClaw      = RGB(250, 240, 210)
	dragonMembrane  = RGB(220, 80, 50).WithAlpha(0.35)
	dragonWingBone  = RGB(170, 60, 40)
	dragonSkull     = RGB(170, 45, 35)
	dragonMouth     = RGB(40, 5, 5)
	dragonHorn      = RGB(230, 210, 170)
	dragonEye       = RGB(255, 200, 60)

	dragonRibs = ribStyle{
		First:   3,
		Stride:  2,
		Length:  26,
		MinSize: 0.15,
		Bend:    0.5,
		Width:   2.2,
		Alpha:   0.8,
		Color:   dragonBone,
		Breath:  0.1,
	}
)

const (
	dragonEmitFrom   = 15
	dragonEmitStride = 2
	dragonEmitChance = 0.6
	dragonEmitMax    = 0.8
)

// Dragon is a long skeleton with fore and hind legs and a pair of wings.
type Dragon struct {
	skel   *Skeleton
	limbs  []*LimbSystem
	wings  []*LimbSystem
	time   float64 // ms
	dist   float64
	target Vec2
	path   *Path
}

// NewDragon builds a dragon with its head at (cx, cy). The chain must be
// long enough to hold the hind legs.
func NewDragon(cfg SkeletonConfig, cx, cy float64) (*Dragon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.BoneCount <= dragonHindRoot {
		return nil, fmt.Errorf("%w: dragon needs more than %d bones, got %d",
			ErrInvalidSkeleton, dragonHindRoot, cfg.BoneCount)
	}
	sk, err := NewSkeleton(cfg, cx, cy)
	if err != nil {
		return nil, err
	}
	d := &Dragon{skel: sk, target: Vec2{cx, cy}, path: NewPath()}
	for _, side := range [2]float64{-1, 1} {
		d.limbs = append(d.limbs,
			NewLimbSystem(LimbFore, dragonForeRoot, 3, 14, side, 3),
			NewLimbSystem(LimbHind, dragonHindRoot, 3, 16, side, 3),
		)
		d.wings = append(d.wings, NewLimbSystem(LimbWing, dragonWingRoot, 4, 26, side, 0))
	}
	d.poseLimbs()
	return d, nil
}

func (d *Dragon) Kind() Kind { return KindDragon }

// Skeleton exposes the dragon's chain.
func (d *Dragon) Skeleton() *Skeleton { return d.skel }

// Limbs returns the four legs.
func (d *Dragon) Limbs() []*LimbSystem { return d.limbs }

// Wings returns both wings.
func (d *Dragon) Wings() []*LimbSystem { return d.wings }

func (d *Dragon) Position() Vec2 {
	h := d.skel.Head()
	return Vec2{h.X, h.Y}
}

func (d *Dragon) Update(dt, tx, ty, speed float64) {
	d.time += dt * 1000
	d.target = Vec2{tx, ty}
	d.skel.Update(dt, tx, ty, speed)
	d.dist = d.skel.DistanceTo(tx, ty)
	d.poseLimbs()
}

func (d *Dragon) poseLimbs() {
	joints := d.skel.Joints()
	for _, l := range d.limbs {
		l.Update(joints, d.time, d.dist)
	}
	for _, w := range d.wings {
		w.Update(joints, d.time, d.dist)
	}
}

func (d *Dragon) Draw(s Surface) {
	joints := d.skel.Joints()
	head := joints[0]
	tail := joints[len(joints)-1]

	spine := spinePath(d.path, joints)
	g := NewLinearGradient(head.X, head.Y, tail.X, tail.Y,
		GradientStop{0, dragonSpineHead},
		GradientStop{1, dragonSpineTail},
	)
	s.StrokePath(spine, 7, Paint{Gradient: g})

	drawRibs(s, joints, dragonRibs, d.time)

	legStyle := LimbStyle{Width: 4, Color: dragonLimb, Claw: dragonClaw}
	for _, l := range d.limbs {
		l.Draw(s, joints, legStyle)
	}
	wingStyle := LimbStyle{Width: 3, Color: dragonWingBone, Membrane: dragonMembrane, Claw: dragonClaw}
	for _, w := range d.wings {
		w.Draw(s, joints, wingStyle)
	}

	d.drawHead(s, head)
}

func (d *Dragon) drawHead(s Surface, head Joint) {
	f := newFrame(head.X, head.Y, head.Angle)
	open := mouthOpening(d.time, d.dist, 0.1, 220, 300, 0.4)

	// Lower jaw drops with the opening; the mouth is the gap under the snout.
	hinge := f.at(-4, 0)
	snout := f.at(24*math.Cos(open*0.5), -24*math.Sin(open*0.5))
	chin := f.at(22*math.Cos(open), 22*math.Sin(open))
	fillTriangle(s, hinge, snout, chin, Solid(dragonMouth))

	jaw := NewPath()
	for i, p := range []Vec2{
		f.at(-10, -9), f.at(4, -10), snout, f.at(8, -2), f.at(-2, 4), f.at(-10, 9),
	} {
		if i == 0 {
			jaw.MoveTo(p.X, p.Y)
			continue
		}
		jaw.LineTo(p.X, p.Y)
	}
	jaw.Close()
	skullG := NewRadialGradient(head.X, head.Y, 0, 24,
		GradientStop{0, dragonSkull.Lerp(ColorWhite, 0.2)},
		GradientStop{1, dragonSkull.Lerp(Color{A: 1}, 0.4)},
	)
	s.FillPath(jaw, Paint{Gradient: skullG})

	lower := NewPath()
	lp := []Vec2{f.at(-6, 5), chin, f.at(-2, 9)}
	lower.MoveTo(lp[0].X, lp[0].Y)
	lower.LineTo(lp[1].X, lp[1].Y)
	lower.LineTo(lp[2].X, lp[2].Y)
	lower.Close()
	s.FillPath(lower, Paint{Gradient: skullG})

	for _, side := range [2]float64{-1, 1} {
		base := f.at(-6, side*7)
		c := f.at(-16, side*16)
		tip := f.at(-28, side*12)
		horn := NewPath()
		horn.MoveTo(base.X, base.Y)
		horn.QuadTo(c.X, c.Y, tip.X, tip.Y)
		s.StrokePath(horn, 2.5, Solid(dragonHorn))

		e := f.at(2, side*5.5)
		s.Save()
		s.SetBlur(6, dragonEye)
		s.FillCircle(e.X, e.Y, 2.2, Solid(dragonEye))
		s.Restore()
	}
}

// EmitParticles trails embers from the back half of the body, every other
// joint. Emission stops while the field holds MaxParticles or more.
func (d *Dragon) EmitParticles(dt float64, field *ParticleField) {
	joints := d.skel.Joints()
	limit := d.skel.Config().MaxParticles
	p := math.Min(dragonEmitMax, dt*60*dragonEmitChance)
	rng := field.Rand()
	n := len(joints)
	for i := dragonEmitFrom; i < n; i += dragonEmitStride {
		if limit > 0 && field.Len() >= limit {
			return
		}
		if !field.Chance(p) {
			continue
		}
		j := joints[i]
		angle := j.Angle + math.Pi + (randFloat(rng)-0.5)*1.0
		speed := Range{0.4, 1.6}.Random(rng) * taper(ease.OutQuad, bodyU(i, n), 0.5)
		vx, vy := math.Cos(angle)*speed, math.Sin(angle)*speed
		field.Add(NewParticle(rng, j.X, j.Y, ParticleOptions{
			VX:   &vx,
			VY:   &vy,
			Size: Float(Range{1.5, 3.5}.Random(rng)),
			Life: Float(Range{50, 120}.Random(rng)),
			Hue:  Float(Range{10, 45}.Random(rng)),
		}))
	}
}
