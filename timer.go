package stillwater

import (
	"fmt"
	"time"
)

// Durations is the set of session lengths, in minutes, hosts offer.
var Durations = []int{5, 10, 15, 30, 60}

// TickInterval is the nominal period of the countdown tick.
const TickInterval = time.Second

// Status is the session timer state.
type Status uint8

const (
	StatusIdle Status = iota
	StatusRunning
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusExpired:
		return "expired"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// TimerSession is a snapshot of the current countdown.
type TimerSession struct {
	Status           Status
	EndTimestamp     time.Time
	RemainingSeconds int
}

// SessionTimer is a countdown that fires an expiry callback once when its
// deadline passes. The remaining time is always recomputed from the absolute
// deadline, so delayed or skipped ticks never accumulate error.
//
// All methods and callbacks run on the scheduler's goroutine; SessionTimer
// does no locking of its own.
type SessionTimer struct {
	sched Scheduler

	// OnExpire runs exactly once per countdown that reaches its deadline.
	OnExpire func()
	// OnTick, if set, receives every recomputed remaining value, including
	// the final 0 just before OnExpire.
	OnTick func(remaining int)

	status    Status
	end       time.Time
	remaining int
	tick      Handle
	gen       uint64
}

// NewSessionTimer returns an idle timer driven by sched. onExpire may be nil.
func NewSessionTimer(sched Scheduler, onExpire func()) *SessionTimer {
	return &SessionTimer{sched: sched, OnExpire: onExpire}
}

// Start begins a countdown of the given length, replacing any countdown in
// progress. Non-positive durations are ignored.
func (t *SessionTimer) Start(minutes int) {
	if minutes <= 0 || t.sched == nil {
		return
	}
	t.StartDuration(time.Duration(minutes) * time.Minute)
}

// StartDuration is Start with an arbitrary positive duration, truncated to
// whole seconds.
func (t *SessionTimer) StartDuration(d time.Duration) {
	d = d.Truncate(time.Second)
	if d <= 0 || t.sched == nil {
		return
	}
	t.stopTick()
	t.gen++
	t.end = t.sched.Now().Add(d)
	t.remaining = int(d / time.Second)
	t.status = StatusRunning
	t.arm(t.gen, TickInterval)
}

// Cancel stops the countdown without firing the expiry callback. The timer
// returns to idle.
func (t *SessionTimer) Cancel() {
	t.stopTick()
	t.gen++
	t.status = StatusIdle
	t.remaining = 0
	t.end = time.Time{}
}

// Status returns the current state.
func (t *SessionTimer) Status() Status {
	return t.status
}

// Remaining returns the seconds left and whether a numeric display applies.
// Only a running countdown has one.
func (t *SessionTimer) Remaining() (int, bool) {
	if t.status != StatusRunning {
		return 0, false
	}
	return t.remaining, true
}

// Session returns a snapshot of the current countdown.
func (t *SessionTimer) Session() TimerSession {
	return TimerSession{Status: t.status, EndTimestamp: t.end, RemainingSeconds: t.remaining}
}

// Active reports whether a tick is scheduled.
func (t *SessionTimer) Active() bool {
	return t.tick != nil
}

func (t *SessionTimer) stopTick() {
	if t.tick != nil {
		t.tick.Cancel()
		t.tick = nil
	}
}

func (t *SessionTimer) arm(gen uint64, d time.Duration) {
	t.tick = t.sched.After(d, func() { t.onTick(gen) })
}

// onTick recomputes the remaining time from the deadline. gen guards against
// callbacks belonging to a replaced or cancelled countdown.
func (t *SessionTimer) onTick(gen uint64) {
	if gen != t.gen || t.status != StatusRunning {
		return
	}
	t.tick = nil

	left := t.end.Sub(t.sched.Now())
	remaining := ceilSeconds(left)
	if remaining <= 0 {
		t.remaining = 0
		t.status = StatusExpired
		if t.OnTick != nil {
			t.OnTick(0)
		}
		if t.OnExpire != nil {
			t.OnExpire()
		}
		return
	}

	t.remaining = remaining
	if t.OnTick != nil {
		t.OnTick(remaining)
	}
	// OnTick may have restarted or cancelled the countdown.
	if gen != t.gen {
		return
	}
	t.arm(gen, nextTickDelay(left))
}

// ceilSeconds rounds d up to whole seconds.
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// nextTickDelay returns the delay until the displayed second next changes,
// so ticks stay aligned to the deadline rather than to when they ran.
func nextTickDelay(left time.Duration) time.Duration {
	frac := left % TickInterval
	if frac <= 0 {
		return TickInterval
	}
	return frac
}

// FormatRemaining renders seconds as minutes:seconds with two-digit seconds,
// e.g. 125 -> "2:05".
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
