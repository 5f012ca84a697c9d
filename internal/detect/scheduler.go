package detect

import (
	"image"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultCooldown is the minimum gap between dispatched detection
// attempts. Pointer-move bursts fire far faster than recognition
// completes; the cooldown bounds OCR load to roughly one unit in flight
// per window.
const DefaultCooldown = 500 * time.Millisecond

// Scheduler gates how often detection work is dispatched. Movement
// signals arriving while detection is disabled, before the catalog is
// loaded, or inside the cooldown window are dropped.
type Scheduler struct {
	cooldown time.Duration
	ready    func() bool
	dispatch func(pos image.Point)

	enabled atomic.Bool

	mu   sync.Mutex
	last time.Time
}

// NewScheduler creates a scheduler. ready reports whether the catalog
// has loaded; dispatch receives one unit of detection work per accepted
// signal and must not block (spawn a goroutine inside if needed).
func NewScheduler(cooldown time.Duration, ready func() bool, dispatch func(pos image.Point)) *Scheduler {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Scheduler{
		cooldown: cooldown,
		ready:    ready,
		dispatch: dispatch,
	}
}

// OnPointerMove handles one movement signal, reporting whether a
// detection unit was dispatched.
func (s *Scheduler) OnPointerMove(pos image.Point) bool {
	if !s.enabled.Load() || !s.ready() {
		return false
	}

	s.mu.Lock()
	now := time.Now()
	if now.Sub(s.last) < s.cooldown {
		s.mu.Unlock()
		return false
	}
	s.last = now
	s.mu.Unlock()

	s.dispatch(pos)
	return true
}

// Enabled reports whether detection is administratively enabled.
func (s *Scheduler) Enabled() bool {
	return s.enabled.Load()
}

// SetEnabled turns detection on or off.
func (s *Scheduler) SetEnabled(on bool) {
	s.enabled.Store(on)
}

// Toggle flips the enabled state and returns the new value.
func (s *Scheduler) Toggle() bool {
	for {
		old := s.enabled.Load()
		if s.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
