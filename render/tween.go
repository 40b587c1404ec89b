package render

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/stillwater"
)

// Tween drives one float property from its starting value to a target,
// optionally back again (yoyo), for a number of cycles. Each leg is a fresh
// gween.Tween; time left over when a leg ends carries into the next one so
// long-running loops do not drift.
//
// There is no global animation manager; the renderer calls Update itself.
type Tween struct {
	spec     stillwater.TweenSpec
	from, to float64
	apply    func(float64)

	tween    *gween.Tween
	duration float64
	elapsed  float64 // seconds into the current leg
	legEnd   float64
	legs     int     // completed legs
	value    float64
	Done     bool
}

// NewTween returns a tween from from to spec.To that writes every value to
// apply. apply may be nil.
func NewTween(spec stillwater.TweenSpec, from float64, apply func(float64)) *Tween {
	t := &Tween{
		spec:     spec,
		from:     from,
		to:       spec.To,
		apply:    apply,
		duration: spec.Duration.Seconds(),
		value:    from,
	}
	t.startLeg()
	return t
}

// Value returns the most recently computed value.
func (t *Tween) Value() float64 {
	return t.value
}

// Legs returns how many one-way legs have completed.
func (t *Tween) Legs() int {
	return t.legs
}

// totalLegs returns the number of legs the tween runs, or -1 for forever.
func (t *Tween) totalLegs() int {
	if t.spec.Repeat < 0 {
		return -1
	}
	perCycle := 1
	if t.spec.Yoyo {
		perCycle = 2
	}
	return (t.spec.Repeat + 1) * perCycle
}

func (t *Tween) startLeg() {
	a, b := t.from, t.to
	if t.spec.Yoyo && t.legs%2 == 1 {
		a, b = b, a
	}
	t.tween = gween.New(float32(a), float32(b), float32(t.duration), easeFunc(t.spec.Ease))
	t.elapsed = 0
	t.legEnd = b
}

// Update advances the tween by dt seconds and applies the new value.
func (t *Tween) Update(dt float64) {
	if t.Done || dt <= 0 {
		return
	}
	if t.duration <= 0 {
		t.set(t.to)
		t.Done = true
		return
	}

	for dt > 0 && !t.Done {
		step := min(dt, t.duration-t.elapsed)
		v, finished := t.tween.Update(float32(step))
		t.elapsed += step
		dt -= step
		t.set(float64(v))

		if !finished && t.elapsed < t.duration {
			continue
		}
		t.set(t.legEnd)
		t.legs++
		if total := t.totalLegs(); total >= 0 && t.legs >= total {
			t.Done = true
			return
		}
		t.startLeg()
	}
}

func (t *Tween) set(v float64) {
	t.value = v
	if t.apply != nil {
		t.apply(v)
	}
}

func easeFunc(e stillwater.Ease) ease.TweenFunc {
	switch e {
	case stillwater.EaseSineInOut:
		return ease.InOutSine
	default:
		return ease.Linear
	}
}
