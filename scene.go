package wriggle

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// FrameInput is the pointer state sampled by the host once per frame.
type FrameInput struct {
	PointerX, PointerY float64
	Held               bool
}

// Scene is the simulation context: it owns the particle field, the active
// creature slot, the viewport and the live settings. Hosts call Update and
// Draw once per frame from a single goroutine.
type Scene struct {
	particles *ParticleField
	entities  *EntityManager
	viewport  Rect
	settings  Settings
	clock     float64 // seconds
	log       logrus.FieldLogger

	pointer Vec2
	held    bool
	notices []*Notice

	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string

	debug bool
	stats FrameStats
}

// NewScene builds a scene from cfg and selects the configured creature. A
// nil logger discards output.
func NewScene(cfg Config, log logrus.FieldLogger) *Scene {
	if log == nil {
		log = discardLogger()
	}
	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}
	cfg = cfg.normalized()
	s := &Scene{
		particles: NewParticleField(cfg.Particles, rng),
		entities:  NewEntityManager(cfg.Creatures, log),
		viewport:  Rect{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)},
		settings:  cfg.Settings,
		log:       log,
		debug:     cfg.Debug,
	}
	s.pointer = s.viewport.Center()
	s.entities.OnError = func(kind Kind, err error) {
		s.settings.Entity = KindNone
		s.Notify(NoticeError, fmt.Sprintf("could not create %s", kind))
	}
	if err := s.SelectEntity(cfg.Settings.Entity); err != nil {
		s.log.WithError(err).Debug("initial creature unavailable")
	}
	return s
}

// Particles returns the scene's particle field.
func (s *Scene) Particles() *ParticleField {
	return s.particles
}

// Entities returns the scene's creature slot.
func (s *Scene) Entities() *EntityManager {
	return s.entities
}

// Viewport returns the current viewport bounds.
func (s *Scene) Viewport() Rect {
	return s.viewport
}

// Settings returns the live settings.
func (s *Scene) Settings() Settings {
	return s.settings
}

// Pointer returns the last pointer position the scene saw.
func (s *Scene) Pointer() Vec2 {
	return s.pointer
}

// Clock returns seconds of simulated time.
func (s *Scene) Clock() float64 {
	return s.clock
}

// Resize updates the viewport used for culling and for centering new
// creatures.
func (s *Scene) Resize(w, h float64) {
	s.viewport = Rect{Width: w, Height: h}
}

// SetSpeed sets the speed multiplier, clamped to [MinSpeed, MaxSpeed].
func (s *Scene) SetSpeed(v float64) {
	s.settings.Speed = clampSpeed(v)
}

// SetCount sets the particle count setting, clamped to [MinCount, MaxCount].
func (s *Scene) SetCount(n int) {
	s.settings.Count = clampCount(n)
}

// Clear removes every particle.
func (s *Scene) Clear() {
	s.particles.Clear()
	s.log.Debug("particles cleared")
}

// SelectEntity swaps the active creature for a fresh one centered in the
// viewport. On failure the slot is left empty and an error notice is shown.
func (s *Scene) SelectEntity(kind Kind) error {
	if err := s.entities.Select(kind, s.viewport.Center()); err != nil {
		return err
	}
	s.settings.Entity = s.entities.Kind()
	return nil
}

// PointerDown spawns an immediate burst of Count particles at (x, y).
func (s *Scene) PointerDown(x, y float64) {
	if s.settings.Count > 0 {
		s.particles.Spawn(x, y, s.settings.Count)
	}
}

// Notify queues an on-screen notice.
func (s *Scene) Notify(level NoticeLevel, text string) {
	s.notices = append(s.notices, NewNotice(level, text))
}

// Notices returns the visible notices, oldest first.
func (s *Scene) Notices() []*Notice {
	return s.notices
}

// Update advances the simulation by dt seconds. Injected input, when
// queued, replaces in for this frame.
func (s *Scene) Update(dt float64, in FrameInput) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if evt, ok := s.popInjected(); ok {
		in = FrameInput{PointerX: evt.x, PointerY: evt.y, Held: evt.pressed}
	}

	s.clock += dt
	if in.Held && !s.held {
		s.PointerDown(in.PointerX, in.PointerY)
	}
	s.held = in.Held
	s.pointer = Vec2{in.PointerX, in.PointerY}

	speed := s.settings.Speed
	spawned := s.particles.SpawnHeld(dt, in.PointerX, in.PointerY, in.Held, s.settings.Count)
	s.particles.Update(speed, s.viewport)
	s.entities.Update(dt, in.PointerX, in.PointerY, speed)
	s.entities.EmitParticles(dt, s.particles)

	s.updateNotices(dt)

	if s.debug {
		s.stats.updateTime = time.Since(t0)
		s.stats.spawned = spawned
		s.stats.particles = s.particles.Len()
	}
}

func (s *Scene) updateNotices(dt float64) {
	live := s.notices[:0]
	for _, n := range s.notices {
		n.Update(dt)
		if !n.Done {
			live = append(live, n)
		}
	}
	for i := len(live); i < len(s.notices); i++ {
		s.notices[i] = nil
	}
	s.notices = live
}

// Draw renders particles, then the creature.
func (s *Scene) Draw(surf Surface) {
	if !s.debug {
		s.particles.Draw(surf)
		s.entities.Draw(surf)
		return
	}

	t0 := time.Now()
	counter := &countingSurface{Surface: surf}
	s.particles.Draw(counter)
	s.entities.Draw(counter)
	s.stats.drawTime = time.Since(t0)
	s.stats.drawOps = counter.ops
	s.debugLog(s.stats)
}

// Screenshot queues a labeled capture. Backends that can read back their
// frame collect the labels with TakeScreenshots after drawing.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// TakeScreenshots returns and clears the queued screenshot labels.
func (s *Scene) TakeScreenshots() []string {
	if len(s.screenshotQueue) == 0 {
		return nil
	}
	labels := s.screenshotQueue
	s.screenshotQueue = nil
	return labels
}
