package detect

import (
	"image"
	"sync/atomic"
	"testing"
	"time"
)

func newTestScheduler(cooldown time.Duration, ready bool) (*Scheduler, *atomic.Int32) {
	var dispatched atomic.Int32
	s := NewScheduler(cooldown, func() bool { return ready }, func(image.Point) {
		dispatched.Add(1)
	})
	return s, &dispatched
}

func TestCooldownGatesDispatch(t *testing.T) {
	s, dispatched := newTestScheduler(100*time.Millisecond, true)
	s.SetEnabled(true)

	pos := image.Pt(10, 10)
	// A movement burst inside one cooldown window dispatches exactly once.
	s.OnPointerMove(pos)
	s.OnPointerMove(pos)
	s.OnPointerMove(pos)
	if got := dispatched.Load(); got != 1 {
		t.Fatalf("dispatched %d units during burst, want 1", got)
	}

	time.Sleep(120 * time.Millisecond)
	s.OnPointerMove(pos)
	if got := dispatched.Load(); got != 2 {
		t.Errorf("dispatched %d units after cooldown, want 2", got)
	}
}

func TestDisabledDropsSignals(t *testing.T) {
	s, dispatched := newTestScheduler(time.Millisecond, true)

	if s.OnPointerMove(image.Pt(0, 0)) {
		t.Error("signal must be dropped while disabled")
	}
	if dispatched.Load() != 0 {
		t.Error("nothing should be dispatched while disabled")
	}
}

func TestCatalogNotReadyDropsSignals(t *testing.T) {
	s, dispatched := newTestScheduler(time.Millisecond, false)
	s.SetEnabled(true)

	if s.OnPointerMove(image.Pt(0, 0)) {
		t.Error("signal must be dropped before the catalog loads")
	}
	if dispatched.Load() != 0 {
		t.Error("nothing should be dispatched before the catalog loads")
	}
}

func TestToggle(t *testing.T) {
	s, _ := newTestScheduler(time.Millisecond, true)

	if on := s.Toggle(); !on {
		t.Error("first toggle should enable")
	}
	if !s.Enabled() {
		t.Error("Enabled should report true")
	}
	if on := s.Toggle(); on {
		t.Error("second toggle should disable")
	}
}

func TestZeroCooldownFallsBackToDefault(t *testing.T) {
	s := NewScheduler(0, func() bool { return true }, func(image.Point) {})
	if s.cooldown != DefaultCooldown {
		t.Errorf("cooldown = %v, want %v", s.cooldown, DefaultCooldown)
	}
}
