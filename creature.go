package wriggle

import (
	"fmt"
	"strings"
)

// Kind identifies a creature type. The set is closed.
type Kind uint8

const (
	KindNone Kind = iota
	KindSnake
	KindFish
	KindKoi
	KindCentipede
	KindDragon
)

// Kinds lists every selectable kind in menu order, KindNone first.
var Kinds = []Kind{KindNone, KindSnake, KindFish, KindKoi, KindCentipede, KindDragon}

var kindNames = [...]string{
	KindNone:      "none",
	KindSnake:     "snake",
	KindFish:      "fish",
	KindKoi:       "koi",
	KindCentipede: "centipede",
	KindDragon:    "dragon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind looks up a kind by name, case-insensitively. Unknown names
// yield KindNone and false.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode
// to KindNone rather than failing, matching how selection treats them.
func (k *Kind) UnmarshalText(text []byte) error {
	*k, _ = ParseKind(string(text))
	return nil
}

// Creature is an animated entity that chases a target point. All methods
// are called from the frame loop; implementations are not safe for
// concurrent use.
type Creature interface {
	Kind() Kind
	// Update advances the creature by dt seconds toward (tx, ty).
	Update(dt, tx, ty, speed float64)
	Draw(s Surface)
	// EmitParticles appends this frame's particles into field.
	EmitParticles(dt float64, field *ParticleField)
	// Position returns the head (or body center) position.
	Position() Vec2
}

// CreatureConfigs groups the per-kind configuration.
type CreatureConfigs struct {
	Snake     SkeletonConfig `toml:"snake"`
	Centipede SkeletonConfig `toml:"centipede"`
	Dragon    SkeletonConfig `toml:"dragon"`
	Fish      FishConfig     `toml:"fish"`
	Koi       FishConfig     `toml:"koi"`
}

// DefaultCreatureConfigs returns the stock tuning for every kind.
func DefaultCreatureConfigs() CreatureConfigs {
	return CreatureConfigs{
		Snake: SkeletonConfig{
			BoneCount:          22,
			BoneLength:         16,
			HeadAngleSmoothing: 5,
			HeadSpeed:          HeadSpeed{Min: 1.5, Max: 9, Dist: 300},
		},
		Centipede: SkeletonConfig{
			BoneCount:          40,
			BoneLength:         8,
			HeadAngleSmoothing: 7,
			HeadSpeed:          HeadSpeed{Min: 1.2, Max: 7, Dist: 250},
		},
		Dragon: SkeletonConfig{
			BoneCount:          45,
			BoneLength:         12,
			HeadAngleSmoothing: 3.5,
			HeadSpeed:          HeadSpeed{Min: 2, Max: 10, Dist: 350},
			MaxParticles:       1500,
		},
		Fish: FishConfig{
			Length: 56, Width: 22,
			Thrust: 0.35, ThrustDist: 200,
			TurnGain: 4, Friction: 0.96,
		},
		Koi: FishConfig{
			Length: 78, Width: 28,
			Thrust: 0.3, ThrustDist: 220,
			TurnGain: 4, Friction: 0.96,
		},
	}
}

// NewCreature constructs a fresh creature of the given kind centered on
// (cx, cy). KindNone and unknown kinds return nil without error.
func NewCreature(kind Kind, cx, cy float64, cfg CreatureConfigs) (Creature, error) {
	switch kind {
	case KindSnake:
		sn, err := NewSnake(cfg.Snake, cx, cy)
		if err != nil {
			return nil, err
		}
		return sn, nil
	case KindFish:
		return NewFish(cfg.Fish, cx, cy), nil
	case KindKoi:
		return NewKoi(cfg.Koi, cx, cy), nil
	case KindCentipede:
		c, err := NewCentipede(cfg.Centipede, cx, cy)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindDragon:
		d, err := NewDragon(cfg.Dragon, cx, cy)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, nil
}
