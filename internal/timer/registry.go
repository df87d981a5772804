// Package timer tracks per-user focus-session countdowns.
//
// A session runs two 40-minute cycles. Each time the countdown is polled
// past expiry the cycle counter advances; after the second cycle the session
// deactivates and clone activation is reported. All state is in-memory and
// resets on restart.
package timer

import (
	"fmt"
	"sync"
	"time"

	"aura/internal/config"
)

// Statuses reported by the registry.
const (
	StatusStarted        = "timer_started"
	StatusInProgress     = "session_in_progress"
	StatusActive         = "active"
	StatusComplete       = "session_complete"
	StatusCloneActivated = "ai_clone_activated"
	StatusNoSession      = "no_session"
)

// TotalCycles is the number of completed countdowns that triggers clone
// activation.
const TotalCycles = 2

// Session is one user's countdown record.
type Session struct {
	StartedAt  time.Time
	Duration   time.Duration
	CycleCount int
	Active     bool
}

// Result is the outcome of a Start or Poll call.
type Result struct {
	Status           string
	SessionNumber    int
	RemainingSeconds int
	TimeLeft         string
	Progress         int
	Message          string
}

// Registry holds all live sessions behind a single mutex so near-simultaneous
// polls for the same user cannot double-increment the cycle counter.
type Registry struct {
	mu            sync.Mutex
	sessions      map[string]*Session
	duration      time.Duration
	restartPolicy string
	now           func() time.Time
}

// NewRegistry creates a Registry. A non-positive duration falls back to the
// standard 40 minutes.
func NewRegistry(duration time.Duration, restartPolicy string) *Registry {
	if duration <= 0 {
		duration = 40 * time.Minute
	}
	if restartPolicy == "" {
		restartPolicy = config.RestartPolicyReject
	}
	return &Registry{
		sessions:      make(map[string]*Session),
		duration:      duration,
		restartPolicy: restartPolicy,
		now:           time.Now,
	}
}

// SetClock replaces the time source. Intended for tests.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// Start begins a session for the user. While a countdown is live, the
// configured restart policy decides whether a second start is rejected with
// in-progress info or silently restarts the clock.
func (r *Registry) Start(userID string) Result {
	userID = normalize(userID)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	if s, ok := r.sessions[userID]; ok && s.Active && now.Sub(s.StartedAt) < s.Duration {
		if r.restartPolicy == config.RestartPolicyRestart {
			s.StartedAt = now
			return Result{
				Status:           StatusStarted,
				SessionNumber:    s.CycleCount + 1,
				RemainingSeconds: int(s.Duration.Seconds()),
				TimeLeft:         formatRemaining(s.Duration),
				Message:          fmt.Sprintf("Focus session restarted. %s on the clock.", formatRemaining(s.Duration)),
			}
		}
		remaining := s.Duration - now.Sub(s.StartedAt)
		return Result{
			Status:           StatusInProgress,
			SessionNumber:    s.CycleCount + 1,
			RemainingSeconds: int(remaining.Seconds()),
			TimeLeft:         formatRemaining(remaining),
			Progress:         progress(now.Sub(s.StartedAt), s.Duration),
			Message:          fmt.Sprintf("A session is already running with %s left. Keep going!", formatRemaining(remaining)),
		}
	}

	s := &Session{
		StartedAt:  now,
		Duration:   r.duration,
		CycleCount: 0,
		Active:     true,
	}
	r.sessions[userID] = s

	return Result{
		Status:           StatusStarted,
		SessionNumber:    1,
		RemainingSeconds: int(r.duration.Seconds()),
		TimeLeft:         formatRemaining(r.duration),
		Message:          fmt.Sprintf("Focus session started! %s on the clock. You've got this.", formatRemaining(r.duration)),
	}
}

// Poll reports the countdown state for the user, advancing the cycle counter
// when the countdown has expired.
func (r *Registry) Poll(userID string) Result {
	userID = normalize(userID)

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok || !s.Active {
		return Result{
			Status:  StatusNoSession,
			Message: "No focus session is running. Say 'start session' to begin one.",
		}
	}

	now := r.now()
	elapsed := now.Sub(s.StartedAt)

	if elapsed < s.Duration {
		remaining := s.Duration - elapsed
		return Result{
			Status:           StatusActive,
			SessionNumber:    s.CycleCount + 1,
			RemainingSeconds: int(remaining.Seconds()),
			TimeLeft:         formatRemaining(remaining),
			Progress:         progress(elapsed, s.Duration),
			Message:          encouragement(remaining),
		}
	}

	// Countdown expired: one cycle complete.
	s.CycleCount++
	if s.CycleCount < TotalCycles {
		s.StartedAt = now
		return Result{
			Status:           StatusComplete,
			SessionNumber:    s.CycleCount,
			RemainingSeconds: int(s.Duration.Seconds()),
			TimeLeft:         formatRemaining(s.Duration),
			Progress:         100,
			Message:          fmt.Sprintf("Session complete! That's cycle %d of %d. The next one starts now.", s.CycleCount, TotalCycles),
		}
	}

	// Second cycle done: hand over to the clone. The record is evicted so a
	// fresh start begins at cycle one again.
	delete(r.sessions, userID)
	return Result{
		Status:        StatusCloneActivated,
		SessionNumber: TotalCycles,
		Progress:      100,
		Message:       "Both focus cycles complete. Your AI clone is taking over background tasks. Go rest.",
	}
}

// Len returns the number of tracked sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions whose countdown expired more than maxIdle ago without
// being polled, bounding the map in a long-running process.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for userID, s := range r.sessions {
		deadline := s.StartedAt.Add(s.Duration + maxIdle)
		if now.After(deadline) {
			delete(r.sessions, userID)
			removed++
		}
	}
	return removed
}

func normalize(userID string) string {
	if userID == "" {
		return config.DefaultUserID
	}
	return userID
}

func progress(elapsed, duration time.Duration) int {
	if duration <= 0 {
		return 0
	}
	p := int(elapsed * 100 / duration)
	if p > 100 {
		p = 100
	}
	return p
}

func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// encouragement maps minutes remaining of a 40-minute cycle to one of four
// fixed messages (boundaries at 30, 20, and 10 minutes left).
func encouragement(remaining time.Duration) string {
	minutes := remaining.Minutes()
	switch {
	case minutes > 30:
		return "Great start! Settle in and let the work flow."
	case minutes > 20:
		return "You're in the zone. Keep that momentum going."
	case minutes > 10:
		return "Over halfway there. Stay with it!"
	default:
		return "Final stretch. Finish strong!"
	}
}
