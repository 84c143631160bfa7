package schedule

import (
	"sync"
	"time"
)

// DefaultSweepInterval is the minimum spacing between full sweeps.
const DefaultSweepInterval = 60 * time.Second

// Guard rate-limits sweep invocations to at most one per interval.
// It holds the time of the last completed sweep in process memory; the state
// is deliberately not persisted, because losing it on restart only causes
// one extra eager sweep and the sweep is idempotent.
type Guard struct {
	mu       sync.Mutex
	interval time.Duration
	lastRun  time.Time
}

// NewGuard creates a guard with the given minimum interval between sweeps.
// A non-positive interval disables throttling.
func NewGuard(interval time.Duration) *Guard {
	return &Guard{interval: interval}
}

// Allow reports whether a sweep may run at the given instant, i.e. no sweep
// completed within the interval. Two concurrent callers may both be allowed;
// that is harmless because the sweep's row updates are idempotent.
func (g *Guard) Allow(now time.Time) bool {
	if g == nil || g.interval <= 0 {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastRun.IsZero() || now.Sub(g.lastRun) >= g.interval
}

// Complete records the time of a completed sweep. Aborted sweeps are not
// recorded, so the next invocation retries eagerly.
func (g *Guard) Complete(now time.Time) {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if now.After(g.lastRun) {
		g.lastRun = now
	}
}

// Reset clears the guard state. Intended for tests.
func (g *Guard) Reset() {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastRun = time.Time{}
}
