package kiosk

import (
	"sync"
	"time"
)

// Inactivity timeouts per terminal screen.
const (
	thankYouIdleTimeout   = 60 * time.Second
	vacateSlotIdleTimeout = 3 * time.Minute
)

// idleTimer owns the single inactivity countdown for the kiosk tab. Arming
// replaces any running countdown, so at most one timer exists; hiding the
// display cancels it and a later arm restarts the full interval.
type idleTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	fire  func()
}

func newIdleTimer(fire func()) *idleTimer {
	return &idleTimer{fire: fire}
}

// Arm cancels any running countdown and starts a fresh one.
func (t *idleTimer) Arm(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, t.fire)
}

// Cancel stops the countdown if one is running.
func (t *idleTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
