package timer

import (
	"sync"
	"testing"
	"time"

	"aura/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionLen = 40 * time.Minute

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestRegistry(policy string) (*Registry, *fakeClock) {
	r := NewRegistry(sessionLen, policy)
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	r.SetClock(func() time.Time { return clock.now })
	return r, clock
}

func TestStartThenPoll(t *testing.T) {
	r, _ := newTestRegistry("")

	started := r.Start("alice")
	require.Equal(t, StatusStarted, started.Status)
	assert.Equal(t, 1, started.SessionNumber)

	polled := r.Poll("alice")
	assert.Equal(t, StatusActive, polled.Status)
	assert.InDelta(t, 2400, polled.RemainingSeconds, 1)
	assert.Equal(t, 0, polled.Progress)
}

func TestEncouragementThresholds(t *testing.T) {
	r, clock := newTestRegistry("")
	r.Start("alice")

	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{5 * time.Minute, "Great start! Settle in and let the work flow."},
		{15 * time.Minute, "You're in the zone. Keep that momentum going."},
		{25 * time.Minute, "Over halfway there. Stay with it!"},
		{35 * time.Minute, "Final stretch. Finish strong!"},
	}
	start := clock.now
	for _, tc := range cases {
		clock.now = start.Add(tc.elapsed)
		res := r.Poll("alice")
		require.Equal(t, StatusActive, res.Status)
		assert.Equal(t, tc.want, res.Message)
	}
}

func TestCycleCompletionAndCloneActivation(t *testing.T) {
	r, clock := newTestRegistry("")
	r.Start("alice")

	clock.advance(sessionLen)
	res := r.Poll("alice")
	require.Equal(t, StatusComplete, res.Status)
	assert.Equal(t, 1, res.SessionNumber)

	// Second cycle continues from the completion instant.
	clock.advance(sessionLen)
	res = r.Poll("alice")
	require.Equal(t, StatusCloneActivated, res.Status)
	assert.Equal(t, TotalCycles, res.SessionNumber)

	// The record is gone; a fresh start begins at cycle one.
	assert.Equal(t, 0, r.Len())
	started := r.Start("alice")
	assert.Equal(t, StatusStarted, started.Status)
	assert.Equal(t, 1, started.SessionNumber)
}

func TestConcurrentPollsCompleteCycleOnce(t *testing.T) {
	r, clock := newTestRegistry("")
	r.Start("alice")
	clock.advance(sessionLen)

	// Many clients polling the same expired session must produce exactly one
	// completion; the rest land on the already-reset second cycle.
	const workers = 16
	statuses := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			statuses <- r.Poll("alice").Status
		}()
	}
	wg.Wait()
	close(statuses)

	counts := make(map[string]int)
	for status := range statuses {
		counts[status]++
	}
	assert.Equal(t, 1, counts[StatusComplete])
	assert.Zero(t, counts[StatusCloneActivated])
	assert.Equal(t, workers-1, counts[StatusActive])
	assert.Equal(t, 2, r.Poll("alice").SessionNumber)
}

func TestRejectPolicyDoesNotResetClock(t *testing.T) {
	r, clock := newTestRegistry(config.RestartPolicyReject)
	r.Start("alice")

	clock.advance(10 * time.Minute)
	res := r.Start("alice")
	require.Equal(t, StatusInProgress, res.Status)
	assert.InDelta(t, 1800, res.RemainingSeconds, 1)

	// The original countdown still expires on schedule.
	clock.advance(30 * time.Minute)
	assert.Equal(t, StatusComplete, r.Poll("alice").Status)
}

func TestRestartPolicyResetsClock(t *testing.T) {
	r, clock := newTestRegistry(config.RestartPolicyRestart)
	r.Start("alice")

	clock.advance(10 * time.Minute)
	res := r.Start("alice")
	require.Equal(t, StatusStarted, res.Status)

	clock.advance(35 * time.Minute)
	assert.Equal(t, StatusActive, r.Poll("alice").Status)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	r, clock := newTestRegistry("")
	r.Start("alice")
	clock.advance(20 * time.Minute)
	r.Start("bob")

	alice := r.Poll("alice")
	bob := r.Poll("bob")
	assert.InDelta(t, 1200, alice.RemainingSeconds, 1)
	assert.InDelta(t, 2400, bob.RemainingSeconds, 1)
}

func TestDefaultUserID(t *testing.T) {
	r, _ := newTestRegistry("")
	r.Start("")
	res := r.Poll(config.DefaultUserID)
	assert.Equal(t, StatusActive, res.Status)
}

func TestPollWithoutSession(t *testing.T) {
	r, _ := newTestRegistry("")
	res := r.Poll("nobody")
	assert.Equal(t, StatusNoSession, res.Status)
}

func TestSweepEvictsStaleSessions(t *testing.T) {
	r, clock := newTestRegistry("")
	r.Start("alice")
	r.Start("bob")
	require.Equal(t, 2, r.Len())

	// Alice keeps polling; bob abandons his session.
	clock.advance(sessionLen + 30*time.Minute)
	r.Poll("alice") // completes cycle one, resets her clock

	removed := r.Sweep(20 * time.Minute)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, StatusActive, r.Poll("alice").Status)
}

func TestProgressIsBounded(t *testing.T) {
	assert.Equal(t, 0, progress(0, sessionLen))
	assert.Equal(t, 50, progress(20*time.Minute, sessionLen))
	assert.Equal(t, 100, progress(2*sessionLen, sessionLen))
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "40:00", formatRemaining(sessionLen))
	assert.Equal(t, "0:05", formatRemaining(5*time.Second))
	assert.Equal(t, "0:00", formatRemaining(-time.Second))
}
