// Package idle force-logs-out users after a fixed period without input,
// independently of the periodic token liveness check.
package idle

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout is the inactivity threshold before the watchdog fires.
const DefaultTimeout = 60 * time.Second

// Watchdog arms a single timer and fully re-arms it on every activity
// signal. When the timer elapses with no intervening activity it invokes
// the idle callback once and stops itself; it never re-fires until
// StartWatching is called again.
//
// Activity delivery is a plain method call with no rendering coupling: the
// per-event cost is one timer reset.
type Watchdog struct {
	timeout time.Duration
	onIdle  func()

	lock     sync.Mutex
	timer    *time.Timer
	watching bool
}

// NewWatchdog creates a stopped watchdog. onIdle runs on the timer
// goroutine when the threshold elapses; wire it to the auth store's logout.
func NewWatchdog(timeout time.Duration, onIdle func()) *Watchdog {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Watchdog{
		timeout: timeout,
		onIdle:  onIdle,
	}
}

// StartWatching arms the watchdog. Any previous state is torn down first so
// timers can never accumulate.
func (w *Watchdog) StartWatching() {
	w.StopWatching()

	w.lock.Lock()
	defer w.lock.Unlock()
	w.watching = true
	w.armLocked()
}

// StopWatching cancels the pending timer and ignores further activity.
// Safe to call repeatedly or before StartWatching.
func (w *Watchdog) StopWatching() {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.watching = false
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Activity records a qualifying user input event (key press, pointer
// movement, scroll, click, touch) and fully re-arms the countdown. Ignored
// while stopped.
func (w *Watchdog) Activity() {
	w.lock.Lock()
	defer w.lock.Unlock()
	if !w.watching {
		return
	}
	w.armLocked()
}

// Watching reports whether the watchdog is currently armed.
func (w *Watchdog) Watching() bool {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.watching
}

// armLocked replaces the pending timer with a fresh full-length countdown.
// Callers hold the lock.
func (w *Watchdog) armLocked() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.timeout, w.fire)
}

func (w *Watchdog) fire() {
	w.lock.Lock()
	if !w.watching {
		w.lock.Unlock()
		return
	}
	// Stop before invoking the callback so it cannot re-fire even if the
	// callback itself takes a while.
	w.watching = false
	w.timer = nil
	w.lock.Unlock()

	log.Info().Dur("timeout", w.timeout).Msg("idle threshold reached, logging out")
	if w.onIdle != nil {
		w.onIdle()
	}
}
