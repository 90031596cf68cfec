package wriggle

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrCreatureConstruct wraps any failure to build a creature.
var ErrCreatureConstruct = errors.New("construct creature")

// EntityManager holds the single active creature. Selecting a kind
// discards the previous creature and all of its chain and limb state.
type EntityManager struct {
	configs CreatureConfigs
	active  Creature
	log     logrus.FieldLogger
	// OnError is called after a failed selection, once the slot is cleared.
	OnError func(kind Kind, err error)
	// factory builds creatures; replaced in tests.
	factory func(kind Kind, cx, cy float64, cfg CreatureConfigs) (Creature, error)
}

// NewEntityManager creates an empty manager. A nil logger discards output.
func NewEntityManager(cfg CreatureConfigs, log logrus.FieldLogger) *EntityManager {
	if log == nil {
		log = discardLogger()
	}
	return &EntityManager{configs: cfg, log: log, factory: NewCreature}
}

// Configs returns a pointer to the per-kind configuration. Changes apply to
// the next Select.
func (m *EntityManager) Configs() *CreatureConfigs {
	return &m.configs
}

// Active returns the current creature, or nil.
func (m *EntityManager) Active() Creature {
	return m.active
}

// Kind returns the active creature's kind, KindNone when the slot is empty.
func (m *EntityManager) Kind() Kind {
	if m.active == nil {
		return KindNone
	}
	return m.active.Kind()
}

// Select replaces the active creature with a new one of the given kind
// centered on center. KindNone or an unknown kind empties the slot. If
// construction fails or panics the slot is emptied, OnError fires and the
// wrapped error is returned; the simulation keeps running without a
// creature.
func (m *EntityManager) Select(kind Kind, center Vec2) (err error) {
	m.active = nil
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w %s: panic: %v", ErrCreatureConstruct, kind, r)
		}
		if err != nil {
			m.active = nil
			m.log.WithError(err).WithField("kind", kind.String()).Error("creature construction failed")
			if m.OnError != nil {
				m.OnError(kind, err)
			}
		}
	}()

	c, cerr := m.factory(kind, center.X, center.Y, m.configs)
	if cerr != nil {
		return fmt.Errorf("%w %s: %w", ErrCreatureConstruct, kind, cerr)
	}
	m.active = c
	m.log.WithFields(logrus.Fields{
		"kind": kind.String(),
		"x":    center.X,
		"y":    center.Y,
	}).Debug("creature selected")
	return nil
}

// Update forwards to the active creature.
func (m *EntityManager) Update(dt, tx, ty, speed float64) {
	if m.active != nil {
		m.active.Update(dt, tx, ty, speed)
	}
}

// Draw forwards to the active creature.
func (m *EntityManager) Draw(s Surface) {
	if m.active != nil {
		m.active.Draw(s)
	}
}

// EmitParticles forwards to the active creature.
func (m *EntityManager) EmitParticles(dt float64, field *ParticleField) {
	if m.active != nil {
		m.active.EmitParticles(dt, field)
	}
}
