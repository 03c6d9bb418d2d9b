// Package liveness re-validates the stored token on a fixed interval,
// catching expiry that happens while the user is browsing or not idle long
// enough for the watchdog.
package liveness

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oldbaker/go-storefront/token"
)

// DefaultInterval is how often the stored token is re-checked.
const DefaultInterval = 5 * time.Minute

// Session is the slice of the auth store the checker needs.
type Session interface {
	Token() (string, bool)
	IsValid() bool
	ClearLocalAuth()
}

// Navigator abstracts the client's routing. CurrentRoute returns the active
// screen name; GoToLogin switches to the login screen, with sessionExpired
// set so it can explain why the user landed there.
type Navigator interface {
	CurrentRoute() string
	GoToLogin(sessionExpired bool)
}

// Checker runs the periodic liveness check. Start performs one immediate
// check and then ticks until Stop; Stop must be called at root teardown so
// the checker never fires against a disposed session.
type Checker struct {
	session  Session
	nav      Navigator
	interval time.Duration

	lock sync.Mutex
	done chan struct{}
}

// NewChecker creates a stopped checker. A non-positive interval falls back
// to DefaultInterval.
func NewChecker(session Session, nav Navigator, interval time.Duration) *Checker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Checker{
		session:  session,
		nav:      nav,
		interval: interval,
	}
}

// Start checks immediately, then on every interval tick. Calling Start on a
// running checker restarts it.
func (c *Checker) Start() {
	c.Stop()

	c.lock.Lock()
	done := make(chan struct{})
	c.done = done
	c.lock.Unlock()

	c.Check()

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Check()
			case <-done:
				return
			}
		}
	}()
}

// Stop cancels the interval. Safe to call when not running.
func (c *Checker) Stop() {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
}

// Check performs a single liveness pass: an expired stored token clears the
// local session and redirects to login, unless the user is already on a
// login or registration screen. A valid token changes nothing.
func (c *Checker) Check() {
	stored, ok := c.session.Token()
	if !ok {
		return
	}

	if !c.session.IsValid() {
		log.Warn().Msg("stored token expired, clearing session")
		c.session.ClearLocalAuth()
		if c.nav != nil && !onAuthScreen(c.nav.CurrentRoute()) {
			c.nav.GoToLogin(true)
		}
		return
	}

	log.Debug().
		Dur("remaining", token.TimeRemaining(stored)).
		Msg("stored token still valid")
}

func onAuthScreen(route string) bool {
	return route == "login" || route == "register"
}
