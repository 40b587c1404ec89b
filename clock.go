package stillwater

import (
	"slices"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Handle cancels a scheduled callback. Cancel is idempotent and safe to call
// after the callback has fired.
type Handle interface {
	Cancel()
}

// Scheduler is the timing capability the session timer depends on: a clock
// plus one-shot delayed callbacks.
type Scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func()) Handle
}

// WallClock reads the system clock (with its monotonic reading).
type WallClock struct{}

// Now returns time.Now().
func (WallClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable time source for tests and simulations.
// Not safe for concurrent use.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current simulated time.
func (c *ManualClock) Now() time.Time { return c.now }

// Set jumps to t.
func (c *ManualClock) Set(t time.Time) { c.now = t }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// FrameScheduler runs delayed callbacks on the goroutine that calls Poll,
// typically once per frame from the game loop's update. Callbacks therefore
// never race with other state touched by that goroutine.
//
// Not safe for concurrent use.
type FrameScheduler struct {
	clock   Clock
	pending []*scheduledCall
	seq     uint64
}

type scheduledCall struct {
	at        time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

func (c *scheduledCall) Cancel() { c.cancelled = true }

// NewFrameScheduler returns a scheduler reading time from clock. A nil clock
// uses the wall clock.
func NewFrameScheduler(clock Clock) *FrameScheduler {
	if clock == nil {
		clock = WallClock{}
	}
	return &FrameScheduler{clock: clock}
}

// Now returns the scheduler clock's current time.
func (s *FrameScheduler) Now() time.Time {
	return s.clock.Now()
}

// After schedules fn to run on the first Poll at or after Now()+d.
func (s *FrameScheduler) After(d time.Duration, fn func()) Handle {
	s.seq++
	call := &scheduledCall{at: s.clock.Now().Add(d), seq: s.seq, fn: fn}
	s.pending = append(s.pending, call)
	return call
}

// Poll fires every due callback in deadline order and returns how many ran.
// Callbacks scheduled while polling run on a later Poll, even when already
// due, so a zero-delay reschedule cannot spin.
func (s *FrameScheduler) Poll() int {
	if len(s.pending) == 0 {
		return 0
	}
	now := s.clock.Now()

	var due []*scheduledCall
	kept := s.pending[:0]
	for _, c := range s.pending {
		switch {
		case c.cancelled:
		case !c.at.After(now):
			due = append(due, c)
		default:
			kept = append(kept, c)
		}
	}
	clear(s.pending[len(kept):])
	s.pending = kept

	slices.SortFunc(due, func(a, b *scheduledCall) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		return int(a.seq) - int(b.seq)
	})

	fired := 0
	for _, c := range due {
		// An earlier callback in this batch may have cancelled c.
		if c.cancelled {
			continue
		}
		c.cancelled = true
		c.fn()
		fired++
	}
	return fired
}

// Pending returns the number of scheduled callbacks that have neither fired
// nor been cancelled.
func (s *FrameScheduler) Pending() int {
	n := 0
	for _, c := range s.pending {
		if !c.cancelled {
			n++
		}
	}
	return n
}

// Clear cancels every pending callback.
func (s *FrameScheduler) Clear() {
	for _, c := range s.pending {
		c.cancelled = true
	}
	clear(s.pending)
	s.pending = s.pending[:0]
}
