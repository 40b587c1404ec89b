package stillwater

import (
	"reflect"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestManualClock(t *testing.T) {
	c := NewManualClock(epoch)
	c.Advance(1500 * time.Millisecond)
	if got := c.Now().Sub(epoch); got != 1500*time.Millisecond {
		t.Errorf("elapsed = %v, want 1.5s", got)
	}
	c.Set(epoch)
	if !c.Now().Equal(epoch) {
		t.Errorf("Now = %v after Set, want %v", c.Now(), epoch)
	}
}

func TestFrameSchedulerFiresInDeadlineOrder(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewFrameScheduler(clock)
	var order []string
	s.After(300*time.Millisecond, func() { order = append(order, "c") })
	s.After(100*time.Millisecond, func() { order = append(order, "a") })
	s.After(200*time.Millisecond, func() { order = append(order, "b") })

	if n := s.Poll(); n != 0 {
		t.Fatalf("Poll before deadline fired %d", n)
	}
	clock.Advance(250 * time.Millisecond)
	if n := s.Poll(); n != 2 {
		t.Fatalf("Poll fired %d, want 2", n)
	}
	clock.Advance(time.Second)
	s.Poll()
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestFrameSchedulerCancel(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewFrameScheduler(clock)
	fired := false
	h := s.After(time.Second, func() { fired = true })
	if s.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", s.Pending())
	}
	h.Cancel()
	h.Cancel()
	clock.Advance(2 * time.Second)
	s.Poll()
	if fired {
		t.Error("cancelled callback fired")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestFrameSchedulerCancelWithinBatch(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewFrameScheduler(clock)
	var second Handle
	secondFired := false
	s.After(10*time.Millisecond, func() { second.Cancel() })
	second = s.After(20*time.Millisecond, func() { secondFired = true })
	clock.Advance(time.Second)
	if n := s.Poll(); n != 1 {
		t.Errorf("Poll fired %d, want 1", n)
	}
	if secondFired {
		t.Error("callback cancelled by an earlier one in the same batch fired")
	}
}

func TestFrameSchedulerRescheduleDefersToNextPoll(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewFrameScheduler(clock)
	count := 0
	var loop func()
	loop = func() {
		count++
		s.After(0, loop)
	}
	s.After(0, loop)
	s.Poll()
	s.Poll()
	if count != 2 {
		t.Errorf("count = %d, want 2 (one per Poll)", count)
	}
}

func TestFrameSchedulerClear(t *testing.T) {
	s := NewFrameScheduler(NewManualClock(epoch))
	s.After(time.Second, func() {})
	s.After(2*time.Second, func() {})
	s.Clear()
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after Clear, want 0", s.Pending())
	}
}

func TestFrameSchedulerDefaultsToWallClock(t *testing.T) {
	s := NewFrameScheduler(nil)
	before := time.Now()
	if s.Now().Before(before) {
		t.Error("wall clock went backwards")
	}
}
