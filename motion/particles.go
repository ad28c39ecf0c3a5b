package motion

import (
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Policy decides what happens to particles over time
type Policy int

const (
	// PolicyWrap keeps every particle, looping positions around the bounds
	PolicyWrap Policy = iota
	// PolicyDecay ages particles and drops them once their life runs out
	PolicyDecay
)

func (p Policy) String() string {
	if p == PolicyDecay {
		return "decay"
	}
	return "wrap"
}

// Particle is one decorative point
type Particle struct {
	ID    int
	X, Y  float64
	VX    float64
	VY    float64
	Size  float64
	Color string
	Life  float64
}

// FieldConfig holds the simulation constants
type FieldConfig struct {
	Count    int
	Policy   Policy
	Tick     time.Duration
	Strength float64 // attraction = Strength / (distance + 1)
	Pull     float64 // scales the pointer delta applied per tick
	Damping  float64 // velocity multiplier per tick
	Jitter   float64 // random velocity perturbation amplitude
	Decay    float64 // life lost per tick under PolicyDecay
	Seed     uint64
}

// DefaultFieldConfig matches the skills section background
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Count:    50,
		Policy:   PolicyWrap,
		Tick:     50 * time.Millisecond,
		Strength: 100,
		Pull:     0.001,
		Damping:  0.99,
		Jitter:   0.1,
		Decay:    0.5,
		Seed:     1,
	}
}

// Field simulates a bounded set of drifting particles attracted to the
// pointer, recomputed on a fixed tick
type Field struct {
	mu        sync.Mutex
	clock     Clock
	cfg       FieldConfig
	rng       *rand.Rand
	width     float64
	height    float64
	particles []Particle
	pointer   Point
	attract   bool

	timer   Timer
	running bool
	onTick  []func()
}

// NewField seeds cfg.Count particles inside width x height. A non-positive
// Tick falls back to the default.
func NewField(clock Clock, width, height float64, cfg FieldConfig) *Field {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultFieldConfig().Tick
	}
	f := &Field{
		clock:   clock,
		cfg:     cfg,
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		width:   width,
		height:  height,
		attract: true,
	}
	f.particles = make([]Particle, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		f.particles = append(f.particles, f.spawn(i))
	}
	return f
}

func (f *Field) spawn(id int) Particle {
	r := f.rng
	return Particle{
		ID:    id,
		X:     r.Float64() * f.width,
		Y:     r.Float64() * f.height,
		VX:    (r.Float64() - 0.5) * 2,
		VY:    (r.Float64() - 0.5) * 2,
		Size:  r.Float64()*3 + 1,
		Color: colorful.Hsl(r.Float64()*360, 0.7, 0.6).Hex(),
		Life:  r.Float64()*100 + 50,
	}
}

// Policy returns the field's fixed policy
func (f *Field) Policy() Policy {
	return f.cfg.Policy
}

// SetPointer moves the attractor
func (f *Field) SetPointer(p Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pointer = p
}

// SetAttracting toggles pointer attraction; drift continues either way
func (f *Field) SetAttracting(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attract = on
}

// Resize changes the bounds. Wrapped particles are folded back inside.
func (f *Field) Resize(width, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = width, height
	if f.cfg.Policy == PolicyWrap {
		for i := range f.particles {
			p := &f.particles[i]
			p.X = wrap(p.X, width)
			p.Y = wrap(p.Y, height)
		}
	}
}

// Step advances the simulation by one tick
func (f *Field) Step() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stepLocked()
}

func (f *Field) stepLocked() {
	cfg := f.cfg
	alive := f.particles[:0]
	for _, p := range f.particles {
		dx := f.pointer.X - p.X
		dy := f.pointer.Y - p.Y
		attraction := 0.0
		if f.attract {
			attraction = cfg.Strength / (math.Hypot(dx, dy) + 1)
		}

		p.X += p.VX + dx*attraction*cfg.Pull
		p.Y += p.VY + dy*attraction*cfg.Pull
		p.VX = p.VX*cfg.Damping + (f.rng.Float64()-0.5)*cfg.Jitter
		p.VY = p.VY*cfg.Damping + (f.rng.Float64()-0.5)*cfg.Jitter

		switch cfg.Policy {
		case PolicyWrap:
			p.X = wrap(p.X, f.width)
			p.Y = wrap(p.Y, f.height)
		case PolicyDecay:
			p.Life -= cfg.Decay
			if p.Life <= 0 {
				continue
			}
		}
		alive = append(alive, p)
	}
	f.particles = alive
}

// wrap folds v into [0, size)
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v = 0
	}
	return v
}

// Particles returns a copy of the live particles
func (f *Field) Particles() []Particle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Particle(nil), f.particles...)
}

// Len returns the live particle count
func (f *Field) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.particles)
}

// OnTick registers fn, called after every scheduled step
func (f *Field) OnTick(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onTick = append(f.onTick, fn)
}

// Start begins ticking. A decaying field stops by itself once empty.
func (f *Field) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		return
	}
	f.running = true
	f.scheduleLocked()
}

func (f *Field) scheduleLocked() {
	f.timer = f.clock.AfterFunc(f.cfg.Tick, f.tick)
}

func (f *Field) tick() {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}
	f.stepLocked()
	if len(f.particles) == 0 {
		f.running = false
		f.timer = nil
	} else {
		f.scheduleLocked()
	}
	fns := slices.Clone(f.onTick)
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Running reports whether the field is ticking
func (f *Field) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

// Stop cancels the pending tick
func (f *Field) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
