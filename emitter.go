package stillwater

import (
	"fmt"
	"time"
)

// ZoneKind selects how a spawn position is sampled.
type ZoneKind uint8

const (
	ZonePoint ZoneKind = iota // every particle spawns at Point
	ZoneRange                 // X and Y sampled independently from ranges
	ZoneRect                  // uniform over Rect
)

// SpawnZone is the region particles are born in, relative to the emitter
// origin.
type SpawnZone struct {
	Kind  ZoneKind
	Point Vec2
	X, Y  Range
	Rect  Rect
}

// PointZone spawns every particle at (x, y).
func PointZone(x, y float64) SpawnZone {
	return SpawnZone{Kind: ZonePoint, Point: Vec2{x, y}}
}

// RangeZone samples X from x and Y from y.
func RangeZone(x, y Range) SpawnZone {
	return SpawnZone{Kind: ZoneRange, X: x, Y: y}
}

// RectZone samples uniformly inside r.
func RectZone(r Rect) SpawnZone {
	return SpawnZone{Kind: ZoneRect, Rect: r}
}

// Sample returns a spawn offset drawn from rng.
func (z SpawnZone) Sample(rng Rand) Vec2 {
	switch z.Kind {
	case ZoneRange:
		return Vec2{X: z.X.Sample(rng), Y: z.Y.Sample(rng)}
	case ZoneRect:
		return Vec2{
			X: z.Rect.X + randFloat(rng)*z.Rect.Width,
			Y: z.Rect.Y + randFloat(rng)*z.Rect.Height,
		}
	default:
		return z.Point
	}
}

func (z SpawnZone) validate() error {
	switch z.Kind {
	case ZonePoint:
		return nil
	case ZoneRange:
		if !z.X.Valid() || !z.Y.Valid() {
			return fmt.Errorf("zone range inverted (x %v, y %v)", z.X, z.Y)
		}
		return nil
	case ZoneRect:
		if z.Rect.Empty() {
			return fmt.Errorf("zone rect %gx%g encloses no area", z.Rect.Width, z.Rect.Height)
		}
		return nil
	default:
		return fmt.Errorf("unknown zone kind %d", z.Kind)
	}
}

// Transition is a start-to-end value interpolated over a particle's life.
type Transition struct {
	Start, End float64
}

// At returns the value at normalized life t in [0, 1].
func (tr Transition) At(t float64) float64 {
	return lerp(tr.Start, tr.End, t)
}

// EmitterConfig describes one particle effect. It is a value type: consumers
// keep their own copy and nothing mutates it after construction.
//
// Angles and rotations are in degrees, clockwise from the positive X axis.
// Speeds are in units per second and accelerations in units per second².
type EmitterConfig struct {
	// Name identifies the effect in logs and errors.
	Name string
	// Frames lists texture keys. With CycleFrames each new particle takes the
	// next frame in order; otherwise the first frame is used.
	Frames      []string
	CycleFrames bool
	// Origin is the emitter position in scene coordinates.
	Origin Vec2
	// Zone is sampled for each particle's spawn offset from Origin.
	Zone SpawnZone
	// Quantity particles are spawned every Frequency.
	Quantity  int
	Frequency time.Duration
	// Lifespan is how long each particle lives.
	Lifespan time.Duration
	// Speed and Angle give the initial velocity.
	Speed Range
	Angle Range
	// Rotate is the sprite rotation sampled once per particle.
	Rotate Range
	// AccelX and AccelY are sampled per particle; GravityY is added to every
	// particle's vertical acceleration.
	AccelX   Range
	AccelY   Range
	GravityY float64
	// Scale and Alpha are interpolated linearly over each particle's life.
	Scale Transition
	Alpha Transition
	// Tint multiplies the texture color. The zero value means no tint.
	Tint Color
	// BlendMode is the compositing operation for particle rendering.
	BlendMode BlendMode
	// MaxParticles is the pool size. Zero derives it from the emission rate
	// and lifespan. New particles are silently dropped when the pool is full.
	MaxParticles int
}

// PoolSize returns the number of particles that can be alive at once.
func (c EmitterConfig) PoolSize() int {
	if c.MaxParticles > 0 {
		return c.MaxParticles
	}
	if c.Frequency <= 0 {
		return 0
	}
	emissions := int(c.Lifespan/c.Frequency) + 1
	return emissions * c.Quantity
}

// Validate checks every field against its allowed range. The returned error
// wraps ErrInvalidEmitter.
func (c EmitterConfig) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("emitter %q: %s: %w", c.Name, fmt.Sprintf(format, args...), ErrInvalidEmitter)
	}
	if len(c.Frames) == 0 {
		return fail("no frames")
	}
	if err := c.Zone.validate(); err != nil {
		return fail("%v", err)
	}
	if c.Quantity <= 0 {
		return fail("quantity %d must be positive", c.Quantity)
	}
	if c.Frequency <= 0 {
		return fail("frequency %v must be positive", c.Frequency)
	}
	if c.Lifespan <= 0 {
		return fail("lifespan %v must be positive", c.Lifespan)
	}
	for name, r := range map[string]Range{
		"speed": c.Speed, "angle": c.Angle, "rotate": c.Rotate,
		"accelX": c.AccelX, "accelY": c.AccelY,
	} {
		if !r.Valid() {
			return fail("%s range inverted (%g > %g)", name, r.Min, r.Max)
		}
	}
	if c.Scale.Start < 0 || c.Scale.End < 0 {
		return fail("scale %g->%g must be non-negative", c.Scale.Start, c.Scale.End)
	}
	if c.Alpha.Start < 0 || c.Alpha.Start > 1 || c.Alpha.End < 0 || c.Alpha.End > 1 {
		return fail("alpha %g->%g out of [0, 1]", c.Alpha.Start, c.Alpha.End)
	}
	if c.MaxParticles < 0 {
		return fail("max particles %d must not be negative", c.MaxParticles)
	}
	return nil
}
