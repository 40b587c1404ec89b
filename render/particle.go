package render

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/stillwater"
)

// particle holds per-particle simulation state. Unexported; managed by Emitter.
type particle struct {
	x, y     float64
	vx, vy   float64
	ax, ay   float64
	age      float64 // seconds since spawn
	rotation float64 // degrees, fixed for the particle's life
	scale    float64
	alpha    float64
	frame    int
}

// Emitter simulates one particle effect on the CPU. The pool is sized from
// the config and preallocated; spawns beyond it are silently dropped.
type Emitter struct {
	config stillwater.EmitterConfig
	frames []*ebiten.Image
	rng    stillwater.Rand

	particles []particle
	alive     int
	lifespan  float64
	frequency float64
	// sinceEmit is the time accumulated towards the next emission.
	sinceEmit float64
	nextFrame int
	active    bool
}

// NewEmitter returns a stopped emitter for cfg. frames holds one image per
// cfg.Frames entry; a nil image skips drawing particles on that frame. A nil
// rng uses the package-level generator.
func NewEmitter(cfg stillwater.EmitterConfig, frames []*ebiten.Image, rng stillwater.Rand) (*Emitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(frames) != len(cfg.Frames) {
		return nil, fmt.Errorf("emitter %q: %d frame images for %d frames: %w",
			cfg.Name, len(frames), len(cfg.Frames), stillwater.ErrInvalidEmitter)
	}
	cfg.Frames = append([]string(nil), cfg.Frames...)
	return &Emitter{
		config:    cfg,
		frames:    append([]*ebiten.Image(nil), frames...),
		rng:       rng,
		particles: make([]particle, cfg.PoolSize()),
		lifespan:  cfg.Lifespan.Seconds(),
		frequency: cfg.Frequency.Seconds(),
	}, nil
}

// Start begins emitting particles. The first batch is spawned on the next
// Update.
func (e *Emitter) Start() {
	if !e.active {
		e.sinceEmit = e.frequency
	}
	e.active = true
}

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *Emitter) Stop() {
	e.active = false
}

// Reset stops emitting and kills all alive particles.
func (e *Emitter) Reset() {
	e.active = false
	e.alive = 0
	e.sinceEmit = 0
	e.nextFrame = 0
}

// IsActive reports whether the emitter is currently emitting new particles.
func (e *Emitter) IsActive() bool {
	return e.active
}

// AliveCount returns the number of alive particles.
func (e *Emitter) AliveCount() int {
	return e.alive
}

// Capacity returns the pool size.
func (e *Emitter) Capacity() int {
	return len(e.particles)
}

// Config returns a copy of the emitter's configuration.
func (e *Emitter) Config() stillwater.EmitterConfig {
	cfg := e.config
	cfg.Frames = append([]string(nil), e.config.Frames...)
	return cfg
}

// Update advances the simulation by dt seconds.
func (e *Emitter) Update(dt float64) {
	if dt <= 0 {
		return
	}

	// Update existing particles, swap-remove dead ones.
	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.age += dt
		if p.age >= e.lifespan {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.vx += p.ax * dt
		p.vy += p.ay * dt
		p.x += p.vx * dt
		p.y += p.vy * dt

		t := p.age / e.lifespan
		p.scale = e.config.Scale.At(t)
		p.alpha = e.config.Alpha.At(t)
		i++
	}

	if !e.active {
		return
	}
	e.sinceEmit += dt
	for e.sinceEmit >= e.frequency {
		e.sinceEmit -= e.frequency
		for n := 0; n < e.config.Quantity; n++ {
			if e.alive >= len(e.particles) {
				break
			}
			e.spawn()
		}
	}
}

// spawn initializes the particle at slot e.alive and increments alive.
func (e *Emitter) spawn() {
	cfg := &e.config
	p := &e.particles[e.alive]

	pos := cfg.Zone.Sample(e.rng)
	p.x = cfg.Origin.X + pos.X
	p.y = cfg.Origin.Y + pos.Y

	angle := cfg.Angle.Sample(e.rng) * math.Pi / 180
	speed := cfg.Speed.Sample(e.rng)
	p.vx = math.Cos(angle) * speed
	p.vy = math.Sin(angle) * speed

	p.ax = cfg.AccelX.Sample(e.rng)
	p.ay = cfg.AccelY.Sample(e.rng) + cfg.GravityY
	p.rotation = cfg.Rotate.Sample(e.rng)

	p.age = 0
	p.scale = cfg.Scale.Start
	p.alpha = cfg.Alpha.Start

	p.frame = 0
	if cfg.CycleFrames {
		p.frame = e.nextFrame
		e.nextFrame = (e.nextFrame + 1) % len(cfg.Frames)
	}

	e.alive++
}

// Draw renders every alive particle centered on its position and returns
// the number of draw calls issued.
func (e *Emitter) Draw(dst *ebiten.Image) int {
	blend := ebitenBlend(e.config.BlendMode)
	tint := e.config.Tint
	if tint == (stillwater.Color{}) {
		tint = stillwater.ColorWhite
	}

	calls := 0
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		img := e.frames[p.frame]
		if img == nil || p.alpha <= 0 || p.scale <= 0 {
			continue
		}
		b := img.Bounds()

		var op ebiten.DrawImageOptions
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(p.scale, p.scale)
		if p.rotation != 0 {
			op.GeoM.Rotate(p.rotation * math.Pi / 180)
		}
		op.GeoM.Translate(p.x, p.y)

		a := tint.A * p.alpha
		op.ColorScale.Scale(
			float32(tint.R*a),
			float32(tint.G*a),
			float32(tint.B*a),
			float32(a),
		)
		op.Blend = blend
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, &op)
		calls++
	}
	return calls
}
