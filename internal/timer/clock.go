// Package timer provides the clock abstraction behind every scheduled
// action in the client, and the owned one-shot handle used for debouncing.
//
// A Handle is acquired with Start and released with Cancel. Whoever holds
// the handle is responsible for cancelling it when the action it schedules
// is superseded.
package timer

import (
	"sync"
	"time"
)

// Timer is the subset of *time.Timer the client relies on.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// Clock creates timers. Real() is backed by the time package; tests use
// a Fake.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// Real returns the wall clock.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTimer(d time.Duration) Timer { return realTimer{time.NewTimer(d)} }

type realTimer struct{ t *time.Timer }

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }

// ── Handle ───────────────────────────────────────────────────────

// Handle is an owned, cancelable one-shot timer.
type Handle struct {
	t    Timer
	stop chan struct{}
	once sync.Once
}

// Start arms a handle that fires after d on clock c.
func Start(c Clock, d time.Duration) *Handle {
	return &Handle{
		t:    c.NewTimer(d),
		stop: make(chan struct{}),
	}
}

// Wait blocks until the handle fires or is cancelled. It reports true only
// if the timer fired and the handle was not cancelled.
func (h *Handle) Wait() bool {
	select {
	case <-h.t.C():
		select {
		case <-h.stop:
			return false
		default:
			return true
		}
	case <-h.stop:
		return false
	}
}

// Cancel stops the timer and releases any goroutine blocked in Wait.
// Safe to call more than once and on a nil handle.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.t.Stop()
		close(h.stop)
	})
}

// Cancelled reports whether Cancel has been called.
func (h *Handle) Cancelled() bool {
	select {
	case <-h.stop:
		return true
	default:
		return false
	}
}
