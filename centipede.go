package wriggle

import (
	"math"

	"github.com/tanema/gween/ease"
)

var (
	centipedeHead    = RGB(200, 70, 40)
	centipedeTail    = RGB(90, 30, 60)
	centipedeLeg     = RGB(60, 25, 20)
	centipedeAntenna = RGB(80, 35, 25)
)

const (
	centipedeHeadRadius = 7.0
	centipedeTailScale  = 0.4
	centipedeLegUpper   = 9.0
	centipedeLegLower   = 8.0
	centipedeLegSpread  = 1.25 // hip angle off the spine
	centipedeLegBend    = 0.9  // knee bend back toward the tail
	centipedeLegSwing   = 0.35 // wave amplitude
	centipedeWaveRate   = 40.0 // rad/s
	centipedeWaveStep   = 0.5  // phase lag per segment
)

// Centipede is a long chain with a pair of jointed legs on every segment.
// The legs swing with a wave that travels tailward along the body.
type Centipede struct {
	skel *Skeleton
	time float64 // seconds
	path *Path
}

// NewCentipede builds a centipede with its head at (cx, cy).
func NewCentipede(cfg SkeletonConfig, cx, cy float64) (*Centipede, error) {
	sk, err := NewSkeleton(cfg, cx, cy)
	if err != nil {
		return nil, err
	}
	return &Centipede{skel: sk, path: NewPath()}, nil
}

func (c *Centipede) Kind() Kind { return KindCentipede }

// Skeleton exposes the centipede's chain.
func (c *Centipede) Skeleton() *Skeleton { return c.skel }

func (c *Centipede) Position() Vec2 {
	h := c.skel.Head()
	return Vec2{h.X, h.Y}
}

func (c *Centipede) Update(dt, tx, ty, speed float64) {
	c.time += dt
	c.skel.Update(dt, tx, ty, speed)
}

// legPose returns the knee and tip of the leg on the given side of joint i.
func (c *Centipede) legPose(j Joint, i int, side, scale float64) (knee, tip Vec2) {
	wave := math.Sin(c.time*centipedeWaveRate - float64(i)*centipedeWaveStep)
	hip := j.Angle + side*(centipedeLegSpread+centipedeLegSwing*wave)
	knee = Vec2{
		X: j.X + math.Cos(hip)*centipedeLegUpper*scale,
		Y: j.Y + math.Sin(hip)*centipedeLegUpper*scale,
	}
	foot := hip - side*(centipedeLegBend-centipedeLegSwing*0.5*wave)
	tip = Vec2{
		X: knee.X + math.Cos(foot)*centipedeLegLower*scale,
		Y: knee.Y + math.Sin(foot)*centipedeLegLower*scale,
	}
	return knee, tip
}

func (c *Centipede) Draw(s Surface) {
	joints := c.skel.Joints()
	n := len(joints)

	// Legs go under the body.
	for i := range joints {
		j := joints[i]
		scale := taper(ease.Linear, bodyU(i, n), 0.6)
		for _, side := range [2]float64{-1, 1} {
			knee, tip := c.legPose(j, i, side, scale)
			c.path.Reset()
			c.path.MoveTo(j.X, j.Y)
			c.path.LineTo(knee.X, knee.Y)
			c.path.LineTo(tip.X, tip.Y)
			s.StrokePath(c.path, 1.4*scale, Solid(centipedeLeg))
		}
	}

	// Tail first so the head overlaps.
	for i := n - 1; i >= 0; i-- {
		j := joints[i]
		u := bodyU(i, n)
		r := centipedeHeadRadius * taper(ease.InOutSine, u, centipedeTailScale)
		base := centipedeHead.Lerp(centipedeTail, u)
		g := NewRadialGradient(j.X, j.Y, 0, r,
			GradientStop{0, base.Lerp(ColorWhite, 0.35)},
			GradientStop{0.7, base},
			GradientStop{1, base.Lerp(Color{A: 1}, 0.5)},
		)
		s.FillCircle(j.X, j.Y, r, Paint{Gradient: g})
	}

	c.drawHead(s, joints[0])
}

func (c *Centipede) drawHead(s Surface, head Joint) {
	f := newFrame(head.X, head.Y, head.Angle)
	r := centipedeHeadRadius
	for _, side := range [2]float64{-1, 1} {
		base := f.at(r*0.6, side*r*0.35)
		wiggle := 0.15 * math.Sin(c.time*12+side)
		a := head.Angle + side*(0.45+wiggle)
		s.StrokeLine(base.X, base.Y, base.X+math.Cos(a)*r*2.4, base.Y+math.Sin(a)*r*2.4,
			1.2, Solid(centipedeAntenna))
	}
	eye := f.at(r*0.45, 0)
	s.FillCircle(eye.X, eye.Y, r*0.22, Solid(RGB(10, 10, 10)))
}

// EmitParticles does nothing; the centipede leaves no trail.
func (c *Centipede) EmitParticles(float64, *ParticleField) {}
