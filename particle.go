package wriggle

import (
	"math"
	"math/rand/v2"
)

const (
	particleMinSize   = 0.08  // size stops decaying once it reaches this floor
	particleSizeDecay = 0.996 // per-update size multiplier above the floor
	particleFullLife  = 200.0 // life at which a particle is fully opaque
	spawnEpsilon      = 1e-9
)

// Default spawn ranges for particles created without explicit options.
var (
	defaultParticleSpeed = Range{0.2, 2}
	defaultParticleSize  = Range{1, 4}
	defaultParticleLife  = Range{60, 200}
	defaultParticleHue   = Range{180, 260}
)

// Particle is a single decaying point. Life counts down by one per update;
// velocity is in pixels per update at speed multiplier 1.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Life   float64
	Hue    float64
	// Color overrides the hue-derived color when non-nil.
	Color *Color
}

// ParticleOptions fixes selected properties of a new particle. Nil fields
// are drawn from the default ranges.
type ParticleOptions struct {
	VX, VY *float64
	Size   *float64
	Life   *float64
	Hue    *float64
	Color  *Color
}

// Float returns a pointer to v, for filling ParticleOptions.
func Float(v float64) *float64 {
	return &v
}

// NewParticle creates a particle at (x, y). Unset velocity uses a uniform
// random direction with a speed in [0.2, 2].
func NewParticle(rng *rand.Rand, x, y float64, opts ParticleOptions) Particle {
	p := Particle{X: x, Y: y, Color: opts.Color}
	if opts.VX != nil && opts.VY != nil {
		p.VX, p.VY = *opts.VX, *opts.VY
	} else {
		angle := randFloat(rng) * 2 * math.Pi
		speed := defaultParticleSpeed.Random(rng)
		p.VX = math.Cos(angle) * speed
		p.VY = math.Sin(angle) * speed
	}
	p.Size = pick(opts.Size, defaultParticleSize, rng)
	p.Life = pick(opts.Life, defaultParticleLife, rng)
	p.Hue = pick(opts.Hue, defaultParticleHue, rng)
	return p
}

func pick(v *float64, r Range, rng *rand.Rand) float64 {
	if v != nil {
		return *v
	}
	return r.Random(rng)
}

// Update advances the particle by one step scaled by speed.
func (p *Particle) Update(speed float64) {
	p.X += p.VX * speed
	p.Y += p.VY * speed
	p.Life--
	if p.Size > particleMinSize {
		p.Size = math.Max(particleMinSize, p.Size*particleSizeDecay)
	}
}

// Alpha returns the particle's opacity, derived from remaining life.
func (p *Particle) Alpha() float64 {
	return math.Max(0, p.Life/particleFullLife)
}

// Tint returns the fill color including alpha.
func (p *Particle) Tint() Color {
	if p.Color != nil {
		return p.Color.WithAlpha(p.Alpha())
	}
	return HSLA(p.Hue, 0.85, 0.6, p.Alpha())
}

// Draw fills the particle as a circle of radius Size.
func (p *Particle) Draw(s Surface) {
	s.FillCircle(p.X, p.Y, p.Size, Solid(p.Tint()))
}

// FieldConfig controls the particle field's spawn rates and culling.
type FieldConfig struct {
	// BaseSpawnPerSecond is the held-pointer spawn rate at BaselineCount.
	BaseSpawnPerSecond float64 `toml:"base_spawn_per_second"`
	// MaxSpawnPerSecond caps the held-pointer spawn rate.
	MaxSpawnPerSecond float64 `toml:"max_spawn_per_second"`
	// BaselineCount is the count setting at which the base rate applies.
	BaselineCount float64 `toml:"baseline_count"`
	// IdleDecayPerSecond drains the spawn accumulator while not held.
	IdleDecayPerSecond float64 `toml:"idle_decay_per_second"`
	// Jitter is the ± offset applied around the pointer for held spawns.
	Jitter float64 `toml:"jitter"`
	// CullMargin inflates the viewport before out-of-bounds culling.
	CullMargin float64 `toml:"cull_margin"`
	// BurstSize is the default Spawn count.
	BurstSize int `toml:"burst_size"`
}

// DefaultFieldConfig returns the standard rates: 200/s at count 50, capped
// at 1000/s, 60 px cull margin.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		BaseSpawnPerSecond: 200,
		MaxSpawnPerSecond:  1000,
		BaselineCount:      50,
		IdleDecayPerSecond: 100,
		Jitter:             6,
		CullMargin:         60,
		BurstSize:          6,
	}
}

// ParticleField owns every live particle. Particles are fungible values;
// removal compacts the slice in place and does not preserve order.
type ParticleField struct {
	config     FieldConfig
	particles  []Particle
	spawnAccum float64
	rng        *rand.Rand
}

// NewParticleField creates an empty field. A nil rng uses the global source.
func NewParticleField(cfg FieldConfig, rng *rand.Rand) *ParticleField {
	return &ParticleField{config: cfg, rng: rng, particles: make([]Particle, 0, 256)}
}

// Config returns a pointer to the field's config for live tuning.
func (f *ParticleField) Config() *FieldConfig {
	return &f.config
}

// Rand returns the field's random source (nil means global).
func (f *ParticleField) Rand() *rand.Rand {
	return f.rng
}

// Chance reports true with probability p.
func (f *ParticleField) Chance(p float64) bool {
	return randFloat(f.rng) < p
}

// Len returns the number of live particles.
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Particles returns the live particles. The slice is invalidated by the
// next Update, Add or Spawn call.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Add appends a particle.
func (f *ParticleField) Add(p Particle) {
	f.particles = append(f.particles, p)
}

// Clear removes all particles and resets the spawn accumulator.
func (f *ParticleField) Clear() {
	f.particles = f.particles[:0]
	f.spawnAccum = 0
}

// Spawn pushes n default particles at (x, y). n <= 0 uses the configured
// burst size.
func (f *ParticleField) Spawn(x, y float64, n int) {
	if n <= 0 {
		n = f.config.BurstSize
	}
	for i := 0; i < n; i++ {
		f.particles = append(f.particles, NewParticle(f.rng, x, y, ParticleOptions{}))
	}
}

// SpawnRate returns the held-pointer spawn rate in particles per second for
// the given count setting.
func (f *ParticleField) SpawnRate(count int) float64 {
	base := f.config.BaselineCount
	if base <= 0 {
		base = 1
	}
	return math.Min(f.config.MaxSpawnPerSecond, f.config.BaseSpawnPerSecond*float64(count)/base)
}

// SpawnHeld feeds the continuous-spawn accumulator for one frame. While
// held it emits one jittered particle per whole accumulated unit; while
// released the accumulator drains toward zero. Returns the number spawned.
func (f *ParticleField) SpawnHeld(dt, x, y float64, held bool, count int) int {
	if !held {
		f.spawnAccum = math.Max(0, f.spawnAccum-f.config.IdleDecayPerSecond*dt)
		return 0
	}
	f.spawnAccum += f.SpawnRate(count) * dt
	n := 0
	j := f.config.Jitter
	// Per-frame rate*dt sums drift below whole numbers at some frame rates.
	for f.spawnAccum >= 1-spawnEpsilon {
		f.spawnAccum -= 1.0
		jx := (randFloat(f.rng)*2 - 1) * j
		jy := (randFloat(f.rng)*2 - 1) * j
		f.particles = append(f.particles, NewParticle(f.rng, x+jx, y+jy, ParticleOptions{}))
		n++
	}
	return n
}

// Update advances every particle and removes the dead and the escaped:
// life <= 0, or outside bounds inflated by the cull margin.
func (f *ParticleField) Update(speed float64, bounds Rect) {
	keep := bounds.Inflate(f.config.CullMargin)
	i := 0
	for i < len(f.particles) {
		p := &f.particles[i]
		p.Update(speed)
		if p.Life <= 0 || !keep.Contains(p.X, p.Y) {
			// Swap with last particle.
			last := len(f.particles) - 1
			f.particles[i] = f.particles[last]
			f.particles = f.particles[:last]
			continue
		}
		i++
	}
}

// Draw renders every particle.
func (f *ParticleField) Draw(s Surface) {
	for i := range f.particles {
		f.particles[i].Draw(s)
	}
}
