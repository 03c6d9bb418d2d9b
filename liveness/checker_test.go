package liveness_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oldbaker/go-storefront/liveness"
)

type fakeSession struct {
	lock    sync.Mutex
	token   string
	valid   bool
	cleared int
	checks  int
}

func (f *fakeSession) Token() (string, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.checks++
	return f.token, f.token != ""
}

func (f *fakeSession) IsValid() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.valid
}

func (f *fakeSession) ClearLocalAuth() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.cleared++
	f.token = ""
	f.valid = false
}

func (f *fakeSession) clearedCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.cleared
}

func (f *fakeSession) checkCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.checks
}

type fakeNavigator struct {
	lock      sync.Mutex
	route     string
	redirects []bool
}

func (f *fakeNavigator) CurrentRoute() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.route
}

func (f *fakeNavigator) GoToLogin(sessionExpired bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.route = "login"
	f.redirects = append(f.redirects, sessionExpired)
}

func (f *fakeNavigator) redirectCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.redirects)
}

func TestCheckRedirectsOnExpiredToken(t *testing.T) {
	session := &fakeSession{token: "jwt-stale", valid: false}
	nav := &fakeNavigator{route: "home"}

	c := liveness.NewChecker(session, nav, time.Minute)
	c.Check()

	require.Equal(t, 1, session.clearedCount())
	require.Equal(t, 1, nav.redirectCount())
	require.True(t, nav.redirects[0], "redirect must carry the sessionExpired flag")
	require.Equal(t, "login", nav.route)
}

func TestCheckSkipsRedirectOnAuthScreens(t *testing.T) {
	for _, route := range []string{"login", "register"} {
		session := &fakeSession{token: "jwt-stale", valid: false}
		nav := &fakeNavigator{route: route}

		liveness.NewChecker(session, nav, time.Minute).Check()

		// The session is still cleared, only the navigation is skipped.
		require.Equal(t, 1, session.clearedCount())
		require.Zero(t, nav.redirectCount())
	}
}

func TestCheckLeavesValidSessionAlone(t *testing.T) {
	session := &fakeSession{token: "jwt-fresh", valid: true}
	nav := &fakeNavigator{route: "home"}

	liveness.NewChecker(session, nav, time.Minute).Check()

	require.Zero(t, session.clearedCount())
	require.Zero(t, nav.redirectCount())
}

func TestCheckIgnoresMissingToken(t *testing.T) {
	session := &fakeSession{}
	nav := &fakeNavigator{route: "home"}

	liveness.NewChecker(session, nav, time.Minute).Check()

	require.Zero(t, session.clearedCount())
	require.Zero(t, nav.redirectCount())
}

func TestStartChecksImmediatelyAndOnTicks(t *testing.T) {
	session := &fakeSession{token: "jwt-fresh", valid: true}
	nav := &fakeNavigator{route: "home"}

	c := liveness.NewChecker(session, nav, 20*time.Millisecond)
	c.Start()
	defer c.Stop()

	// One check happens synchronously at start.
	require.GreaterOrEqual(t, session.checkCount(), 1)

	require.Eventually(t, func() bool { return session.checkCount() >= 3 },
		time.Second, time.Millisecond)
}

func TestStopCancelsInterval(t *testing.T) {
	session := &fakeSession{token: "jwt-fresh", valid: true}

	c := liveness.NewChecker(session, &fakeNavigator{route: "home"}, 10*time.Millisecond)
	c.Start()
	c.Stop()

	settled := session.checkCount()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, settled, session.checkCount())

	// Stop again is a no-op.
	c.Stop()
}
