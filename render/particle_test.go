package render

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/stillwater"
)

func defaultTestConfig(max int) stillwater.EmitterConfig {
	return stillwater.EmitterConfig{
		Name:         "test",
		Frames:       []string{"dot"},
		Origin:       stillwater.Vec2{X: 10, Y: 20},
		Zone:         stillwater.PointZone(0, 0),
		Quantity:     1,
		Frequency:    250 * time.Millisecond,
		Lifespan:     time.Second,
		Speed:        stillwater.Fixed(100),
		Angle:        stillwater.Fixed(0),
		Scale:        stillwater.Transition{Start: 1, End: 0.5},
		Alpha:        stillwater.Transition{Start: 1, End: 0},
		MaxParticles: max,
	}
}

func newTestEmitter(t *testing.T, cfg stillwater.EmitterConfig) *Emitter {
	t.Helper()
	e, err := NewEmitter(cfg, make([]*ebiten.Image, len(cfg.Frames)), stillwater.NewRand(1))
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	return e
}

func assertNear(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want ~%v", name, got, want)
	}
}

func TestNewEmitterCreatesPool(t *testing.T) {
	e := newTestEmitter(t, defaultTestConfig(500))
	if e.Capacity() != 500 {
		t.Errorf("pool size = %d, want 500", e.Capacity())
	}
	if e.AliveCount() != 0 || e.IsActive() {
		t.Errorf("new emitter alive = %d, active = %v; want 0, false", e.AliveCount(), e.IsActive())
	}
}

func TestNewEmitterDerivedPool(t *testing.T) {
	cfg := stillwater.Leaves().Config
	e := newTestEmitter(t, cfg)
	if e.Capacity() != cfg.PoolSize() {
		t.Errorf("pool size = %d, want %d", e.Capacity(), cfg.PoolSize())
	}
}

func TestNewEmitterRejects(t *testing.T) {
	cfg := defaultTestConfig(10)
	cfg.Quantity = 0
	if _, err := NewEmitter(cfg, []*ebiten.Image{nil}, nil); !errors.Is(err, stillwater.ErrInvalidEmitter) {
		t.Errorf("invalid config: err = %v, want ErrInvalidEmitter", err)
	}
	if _, err := NewEmitter(defaultTestConfig(10), nil, nil); !errors.Is(err, stillwater.ErrInvalidEmitter) {
		t.Errorf("missing frame images: err = %v, want ErrInvalidEmitter", err)
	}
}

func TestStartStopReset(t *testing.T) {
	e := newTestEmitter(t, defaultTestConfig(100))

	e.Start()
	if !e.IsActive() {
		t.Error("emitter should be active after Start")
	}
	e.Update(0.125)
	if e.AliveCount() != 1 {
		t.Fatalf("alive after first update = %d, want 1", e.AliveCount())
	}

	e.Stop()
	e.Update(0.5)
	if e.AliveCount() != 1 {
		t.Errorf("Stop should keep live particles, alive = %d", e.AliveCount())
	}

	e.Reset()
	if e.IsActive() || e.AliveCount() != 0 {
		t.Errorf("after Reset active = %v, alive = %d", e.IsActive(), e.AliveCount())
	}
}

func TestEmitsQuantityEveryFrequency(t *testing.T) {
	cfg := defaultTestConfig(100)
	cfg.Quantity = 2
	cfg.Lifespan = 10 * time.Second
	e := newTestEmitter(t, cfg)
	e.Start()

	want := []int{2, 4, 4, 6, 6, 8}
	for i, w := range want {
		e.Update(0.125)
		if e.AliveCount() != w {
			t.Errorf("update %d: alive = %d, want %d", i, e.AliveCount(), w)
		}
	}
}

func TestPoolLimit(t *testing.T) {
	cfg := defaultTestConfig(3)
	cfg.Quantity = 2
	cfg.Lifespan = 10 * time.Second
	e := newTestEmitter(t, cfg)
	e.Start()
	for i := 0; i < 10; i++ {
		e.Update(0.25)
	}
	if e.AliveCount() != 3 {
		t.Errorf("alive = %d, want pool size 3", e.AliveCount())
	}
}

func TestParticlesDieAtLifespan(t *testing.T) {
	e := newTestEmitter(t, defaultTestConfig(10))
	e.Start()
	e.Update(0.125)
	e.Stop()

	e.Update(0.5)
	if e.AliveCount() != 1 {
		t.Fatalf("alive at half life = %d, want 1", e.AliveCount())
	}
	e.Update(0.5)
	if e.AliveCount() != 0 {
		t.Errorf("alive after lifespan = %d, want 0", e.AliveCount())
	}
}

func TestParticleKinematics(t *testing.T) {
	e := newTestEmitter(t, defaultTestConfig(10))
	e.Start()
	e.Update(0.125)
	e.Stop()

	p := e.particles[0]
	if p.x != 10 || p.y != 20 {
		t.Fatalf("spawn = (%v, %v), want origin (10, 20)", p.x, p.y)
	}

	e.Update(0.5)
	p = e.particles[0]
	assertNear(t, "x", p.x, 60, 1e-9)
	assertNear(t, "y", p.y, 20, 1e-9)
	assertNear(t, "scale", p.scale, 0.75, 1e-9)
	assertNear(t, "alpha", p.alpha, 0.5, 1e-9)
}

func TestParticleAngleIsDegrees(t *testing.T) {
	cfg := defaultTestConfig(10)
	cfg.Angle = stillwater.Fixed(90)
	e := newTestEmitter(t, cfg)
	e.Start()
	e.Update(0.125)
	e.Stop()
	e.Update(0.5)
	p := e.particles[0]
	assertNear(t, "x", p.x, 10, 1e-9)
	assertNear(t, "y", p.y, 70, 1e-9)
}

func TestParticleAccelerationAndGravity(t *testing.T) {
	cfg := defaultTestConfig(10)
	cfg.Speed = stillwater.Fixed(0)
	cfg.Lifespan = 10 * time.Second
	cfg.AccelX = stillwater.Fixed(4)
	cfg.AccelY = stillwater.Fixed(30)
	cfg.GravityY = 2
	e := newTestEmitter(t, cfg)
	e.Start()
	e.Update(0.125)
	e.Stop()

	e.Update(1)
	p := e.particles[0]
	assertNear(t, "vx", p.vx, 4, 1e-9)
	assertNear(t, "vy", p.vy, 32, 1e-9)
	assertNear(t, "x", p.x, 14, 1e-9)
	assertNear(t, "y", p.y, 52, 1e-9)
}

func TestParticleRotationFixed(t *testing.T) {
	cfg := defaultTestConfig(10)
	cfg.Rotate = stillwater.Range{Min: 30, Max: 60}
	e := newTestEmitter(t, cfg)
	e.Start()
	e.Update(0.125)
	e.Stop()
	r := e.particles[0].rotation
	if r < 30 || r >= 60 {
		t.Fatalf("rotation = %v, want in [30, 60)", r)
	}
	e.Update(0.5)
	if e.particles[0].rotation != r {
		t.Errorf("rotation changed over life: %v -> %v", r, e.particles[0].rotation)
	}
}

func TestFramesCycle(t *testing.T) {
	cfg := defaultTestConfig(10)
	cfg.Frames = []string{"a", "b", "c"}
	cfg.CycleFrames = true
	cfg.Quantity = 5
	e := newTestEmitter(t, cfg)
	e.Start()
	e.Update(0.125)

	var got []int
	for i := 0; i < e.AliveCount(); i++ {
		got = append(got, e.particles[i].frame)
	}
	if want := []int{0, 1, 2, 0, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("frames = %v, want %v", got, want)
	}
}

func TestSpawnWithinZone(t *testing.T) {
	cfg := stillwater.Sunbeams().Config
	e := newTestEmitter(t, cfg)
	e.Start()
	e.Update(0.001)
	if e.AliveCount() != cfg.Quantity {
		t.Fatalf("alive = %d, want %d", e.AliveCount(), cfg.Quantity)
	}
	for i := 0; i < e.AliveCount(); i++ {
		p := e.particles[i]
		if p.x < -100 || p.x >= 900 || p.y != -50 {
			t.Errorf("particle %d at (%v, %v), outside sunbeam zone", i, p.x, p.y)
		}
		if p.ay != 30 {
			t.Errorf("particle %d ay = %v, want 30", i, p.ay)
		}
	}
}

func TestEmitterDeterministic(t *testing.T) {
	cfg := stillwater.Leaves().Config
	frames := make([]*ebiten.Image, len(cfg.Frames))
	a, _ := NewEmitter(cfg, frames, stillwater.NewRand(7))
	b, _ := NewEmitter(cfg, frames, stillwater.NewRand(7))
	a.Start()
	b.Start()
	for i := 0; i < 120; i++ {
		a.Update(1.0 / 60)
		b.Update(1.0 / 60)
	}
	if !reflect.DeepEqual(a.particles[:a.alive], b.particles[:b.alive]) {
		t.Error("same seed produced different particles")
	}
}

func TestConfigReturnsCopy(t *testing.T) {
	e := newTestEmitter(t, defaultTestConfig(10))
	cfg := e.Config()
	cfg.Frames[0] = "changed"
	cfg.Quantity = 99
	if got := e.Config(); got.Frames[0] != "dot" || got.Quantity != 1 {
		t.Errorf("mutating the returned config changed the emitter: %+v", got)
	}
}

func TestUpdateIgnoresNonPositiveDelta(t *testing.T) {
	e := newTestEmitter(t, defaultTestConfig(10))
	e.Start()
	e.Update(0)
	e.Update(-1)
	if e.AliveCount() != 0 {
		t.Errorf("alive = %d, want 0", e.AliveCount())
	}
}
