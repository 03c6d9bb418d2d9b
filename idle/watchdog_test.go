package idle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oldbaker/go-storefront/idle"
)

// Scaled-down threshold so the scenarios run in milliseconds.
const testTimeout = 60 * time.Millisecond

func TestFiresAfterInactivity(t *testing.T) {
	var fired atomic.Int32
	w := idle.NewWatchdog(testTimeout, func() { fired.Add(1) })

	w.StartWatching()
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		10*testTimeout, time.Millisecond)

	// Fired means stopped: it must not fire again.
	time.Sleep(3 * testTimeout)
	require.EqualValues(t, 1, fired.Load())
	require.False(t, w.Watching())
}

func TestActivityResetsCountdown(t *testing.T) {
	var fired atomic.Int32
	w := idle.NewWatchdog(testTimeout, func() { fired.Add(1) })
	defer w.StopWatching()

	w.StartWatching()

	// Keep signalling activity just before the threshold; the timer is a
	// full reset, so the watchdog must stay quiet the whole time.
	for i := 0; i < 5; i++ {
		time.Sleep(testTimeout / 2)
		w.Activity()
	}
	require.Zero(t, fired.Load())

	// Silence afterwards lets it fire.
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		10*testTimeout, time.Millisecond)
}

func TestStopPreventsFiring(t *testing.T) {
	var fired atomic.Int32
	w := idle.NewWatchdog(testTimeout, func() { fired.Add(1) })

	w.StartWatching()
	w.StopWatching()

	time.Sleep(3 * testTimeout)
	require.Zero(t, fired.Load())
}

func TestStopIsIdempotent(t *testing.T) {
	w := idle.NewWatchdog(testTimeout, func() {})

	// Never started.
	w.StopWatching()
	w.StopWatching()
	require.False(t, w.Watching())

	// Started and stopped twice.
	w.StartWatching()
	w.StopWatching()
	w.StopWatching()
	require.False(t, w.Watching())

	// Activity while stopped is a no-op.
	w.Activity()
	require.False(t, w.Watching())
}

func TestRestartAfterFiring(t *testing.T) {
	var fired atomic.Int32
	w := idle.NewWatchdog(testTimeout, func() { fired.Add(1) })

	w.StartWatching()
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		10*testTimeout, time.Millisecond)

	// StartWatching re-arms a fired watchdog cleanly.
	w.StartWatching()
	require.True(t, w.Watching())
	require.Eventually(t, func() bool { return fired.Load() == 2 },
		10*testTimeout, time.Millisecond)
}
