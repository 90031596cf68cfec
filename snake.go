package wriggle

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Snake palette and proportions.
var (
	snakeSpine     = RGB(28, 72, 52)
	snakeVertebra  = RGB(120, 220, 170)
	snakeRib       = RGB(170, 240, 205)
	snakeSkull     = RGB(60, 140, 100)
	snakeSkullDark = RGB(18, 48, 34)
	snakeMouth     = RGB(70, 10, 24)
	snakeTooth     = RGB(240, 240, 225)
	snakeEye       = RGB(255, 230, 90)

	snakeRibs = ribStyle{
		First:   2,
		Stride:  1,
		Length:  20,
		MinSize: 0.25,
		Bend:    0.35,
		Width:   1.8,
		Alpha:   0.75,
		Color:   snakeRib,
		Breath:  0.18,
	}
)

const (
	snakeGlowHueBase  = 110.0
	snakeGlowHueRange = 140.0
	snakeSpineWidth   = 5.0
	snakeHeadLength   = 15.0

	snakeEmitStride = 3
	snakeEmitChance = 0.4
	snakeEmitMax    = 0.6
)

// Snake is a glowing skeletal serpent.
type Snake struct {
	skel   *Skeleton
	time   float64 // ms
	target Vec2
	dist   float64
	path   *Path
}

// NewSnake builds a snake with its head at (cx, cy).
func NewSnake(cfg SkeletonConfig, cx, cy float64) (*Snake, error) {
	sk, err := NewSkeleton(cfg, cx, cy)
	if err != nil {
		return nil, err
	}
	return &Snake{skel: sk, target: Vec2{cx, cy}, path: NewPath()}, nil
}

func (sn *Snake) Kind() Kind { return KindSnake }

// Skeleton exposes the snake's chain.
func (sn *Snake) Skeleton() *Skeleton { return sn.skel }

func (sn *Snake) Position() Vec2 {
	h := sn.skel.Head()
	return Vec2{h.X, h.Y}
}

func (sn *Snake) Update(dt, tx, ty, speed float64) {
	sn.time += dt * 1000
	sn.target = Vec2{tx, ty}
	sn.skel.Update(dt, tx, ty, speed)
	sn.dist = sn.skel.DistanceTo(tx, ty)
}

func (sn *Snake) Draw(s Surface) {
	joints := sn.skel.Joints()
	n := len(joints)
	t := sn.time

	spine := spinePath(sn.path, joints)
	s.StrokePath(spine, snakeSpineWidth, Solid(snakeSpine))

	hue := snakeGlowHueBase + math.Mod(t/50, snakeGlowHueRange)
	glow := HSLA(hue, 0.9, 0.6, 1)
	s.Save()
	s.SetAlpha(0.55)
	s.SetBlur(14, glow)
	s.StrokePath(spine, 2.5+1.5*math.Sin(t/300), Solid(glow))
	s.Restore()

	for i := n - 1; i >= 1; i-- {
		j := joints[i]
		u := bodyU(i, n)
		size := 5 * taper(ease.InQuad, u, 0.35)
		alpha := lerp(0.9, 0.1, u)
		s.FillEllipse(j.X, j.Y, size*1.3, size*0.8, j.Angle, Solid(snakeVertebra.WithAlpha(alpha)))
	}

	drawRibs(s, joints, snakeRibs, t)
	sn.drawHead(s, glow)
}

func (sn *Snake) drawHead(s Surface, glow Color) {
	head := sn.skel.Head()
	a := head.Angle
	f := newFrame(head.X, head.Y, a)
	t := sn.time

	open := mouthOpening(t, sn.dist, 0.12, 140, 260, 0.45)

	// Mouth sits under the skull so the jaws read as cut into it.
	tip := snakeHeadLength
	upper := f.at(tip*math.Cos(open), -tip*math.Sin(open))
	lower := f.at(tip*math.Cos(open), tip*math.Sin(open))
	hinge := f.at(-2, 0)
	fillTriangle(s, hinge, upper, lower, Solid(snakeMouth))

	for k := 1; k <= 2; k++ {
		d := tip * (0.45 + 0.25*float64(k))
		for _, side := range [2]float64{-1, 1} {
			base := f.at(d*math.Cos(open), side*d*math.Sin(open))
			back := f.at((d-2.5)*math.Cos(open), side*(d-2.5)*math.Sin(open))
			point := f.at(d*math.Cos(open)-1, side*(d*math.Sin(open)-3.5))
			fillTriangle(s, base, back, point, Solid(snakeTooth))
		}
	}

	skull := f.at(-3, 0)
	g := NewRadialGradient(skull.X, skull.Y, 0, 13,
		GradientStop{0, snakeSkull},
		GradientStop{1, snakeSkullDark},
	)
	jaw := 1 - open*0.6
	s.FillEllipse(skull.X, skull.Y, 13, 9*jaw, a, Paint{Gradient: g})

	// Eyes glance toward the target within a limited arc.
	_, toTarget := distance(head.X, head.Y, sn.target.X, sn.target.Y)
	look := math.Max(-0.6, math.Min(0.6, WrapAngle(toTarget-a)))
	for _, side := range [2]float64{-1, 1} {
		e := f.at(2, side*5.5)
		s.Save()
		s.SetBlur(8, glow)
		s.FillCircle(e.X, e.Y, 2.8, Solid(snakeEye))
		s.Restore()
		s.FillCircle(e.X+math.Cos(a+look)*1.1, e.Y+math.Sin(a+look)*1.1, 1.2, Solid(Color{A: 1}))
	}
}

// EmitParticles sheds sparks from every third joint. Head-ward sparks fly
// faster. Emission stops while the field holds MaxParticles or more; a
// zero MaxParticles never caps.
func (sn *Snake) EmitParticles(dt float64, field *ParticleField) {
	joints := sn.skel.Joints()
	n := float64(len(joints))
	limit := sn.skel.Config().MaxParticles
	p := math.Min(snakeEmitMax, dt*60*snakeEmitChance)
	rng := field.Rand()
	for i := 0; i < len(joints); i += snakeEmitStride {
		if limit > 0 && field.Len() >= limit {
			return
		}
		if !field.Chance(p) {
			continue
		}
		j := joints[i]
		angle := j.Angle + (randFloat(rng)-0.5)*1.2
		speed := Range{0.3, 1.4}.Random(rng) * (0.5 + (1 - float64(i)/n))
		vx, vy := math.Cos(angle)*speed, math.Sin(angle)*speed
		field.Add(NewParticle(rng, j.X, j.Y, ParticleOptions{
			VX:   &vx,
			VY:   &vy,
			Size: Float(Range{1, 2.6}.Random(rng)),
			Life: Float(Range{50, 130}.Random(rng)),
			Hue:  Float(Range{100, 170}.Random(rng)),
		}))
	}
}
