package wriggle

import (
	"errors"
	"fmt"
	"math"
)

// HeadSpeed ramps the head's travel speed with distance to the target:
// Min at distance 0, Max at Dist and beyond. Speeds are pixels per 60 Hz
// frame.
type HeadSpeed struct {
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	Dist float64 `toml:"dist"`
}

// SkeletonConfig configures a follow-the-leader chain.
type SkeletonConfig struct {
	BoneCount  int     `toml:"bone_count"`
	BoneLength float64 `toml:"bone_length"`
	// HeadAngleSmoothing is the head's turn gain; the head covers
	// min(1, dt*HeadAngleSmoothing) of the remaining angle each update.
	HeadAngleSmoothing float64   `toml:"head_angle_smoothing"`
	HeadSpeed          HeadSpeed `toml:"head_speed"`
	// MaxParticles caps emission while the field holds at least this many
	// particles. 0 means no cap.
	MaxParticles int `toml:"max_particles"`
}

// ErrInvalidSkeleton is returned for configs that cannot form a chain.
var ErrInvalidSkeleton = errors.New("invalid skeleton config")

// Validate reports whether the config can build a chain.
func (c SkeletonConfig) Validate() error {
	if c.BoneCount < 1 {
		return fmt.Errorf("%w: bone count %d", ErrInvalidSkeleton, c.BoneCount)
	}
	if c.BoneLength <= 0 {
		return fmt.Errorf("%w: bone length %g", ErrInvalidSkeleton, c.BoneLength)
	}
	if c.HeadSpeed.Dist <= 0 {
		return fmt.Errorf("%w: head speed distance %g", ErrInvalidSkeleton, c.HeadSpeed.Dist)
	}
	return nil
}

// Skeleton is an ordered chain of joints. The head chases a target; every
// other joint is pulled rigidly behind its predecessor, so consecutive
// joints are always exactly BoneLength apart after Update. Joints carry
// no velocity; a sudden target jump cannot make the chain diverge.
type Skeleton struct {
	config SkeletonConfig
	joints []Joint
}

// NewSkeleton lays the chain out horizontally, head at (cx, cy) facing +X
// and the body trailing toward -X.
func NewSkeleton(cfg SkeletonConfig, cx, cy float64) (*Skeleton, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sk := &Skeleton{config: cfg, joints: make([]Joint, cfg.BoneCount)}
	sk.Reset(cx, cy)
	return sk, nil
}

// Reset lays the chain out again at (cx, cy).
func (sk *Skeleton) Reset(cx, cy float64) {
	for i := range sk.joints {
		sk.joints[i] = Joint{X: cx - float64(i)*sk.config.BoneLength, Y: cy}
	}
}

// Config returns the skeleton's configuration.
func (sk *Skeleton) Config() SkeletonConfig {
	return sk.config
}

// Joints returns the chain, head first. Callers may read but should not
// reposition joints; Update owns their layout.
func (sk *Skeleton) Joints() []Joint {
	return sk.joints
}

// Head returns the first joint.
func (sk *Skeleton) Head() *Joint {
	return &sk.joints[0]
}

// DistanceTo returns the floored distance from the head to (x, y).
func (sk *Skeleton) DistanceTo(x, y float64) float64 {
	h := sk.Head()
	d, _ := distance(h.X, h.Y, x, y)
	return d
}

// Update turns and moves the head toward (tx, ty), then relaxes the rest
// of the chain. dt is in seconds.
func (sk *Skeleton) Update(dt, tx, ty, speed float64) {
	cfg := &sk.config
	head := &sk.joints[0]

	dist, dir := distance(head.X, head.Y, tx, ty)
	head.Angle = LerpAngle(head.Angle, dir, math.Min(1, dt*cfg.HeadAngleSmoothing))

	hs := lerp(cfg.HeadSpeed.Min, cfg.HeadSpeed.Max, clamp01(dist/cfg.HeadSpeed.Dist)) * speed
	step := hs * frameStep(dt)
	head.X += math.Cos(head.Angle) * step
	head.Y += math.Sin(head.Angle) * step

	sk.relax()
}

// relax snaps each joint to BoneLength behind its predecessor, facing it.
func (sk *Skeleton) relax() {
	l := sk.config.BoneLength
	for i := 1; i < len(sk.joints); i++ {
		prev := &sk.joints[i-1]
		j := &sk.joints[i]
		angle := math.Atan2(prev.Y-j.Y, prev.X-j.X)
		if j.X == prev.X && j.Y == prev.Y {
			// Coincident joints have no direction; inherit the leader's.
			angle = prev.Angle
		}
		j.Angle = angle
		j.X = prev.X - math.Cos(angle)*l
		j.Y = prev.Y - math.Sin(angle)*l
	}
}
