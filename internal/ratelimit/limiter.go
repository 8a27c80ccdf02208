// Package ratelimit implements sliding-window admission control for mutation
// operations. Each key carries its own window; independent keys never share
// a budget.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits at most maxRequests calls per key within any rolling window.
// Timestamps older than the window are pruned before the count check, so an
// admission slot frees up exactly when its timestamp ages out.
type Limiter struct {
	maxRequests int
	window      time.Duration

	mu      sync.Mutex
	entries map[string][]time.Time
	now     func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the limiter's time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// NewLimiter creates a limiter admitting maxRequests per window for each key.
func NewLimiter(maxRequests int, window time.Duration, opts ...Option) *Limiter {
	if maxRequests <= 0 {
		maxRequests = 10
	}
	if window <= 0 {
		window = time.Second
	}

	l := &Limiter{
		maxRequests: maxRequests,
		window:      window,
		entries:     make(map[string][]time.Time),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsAllowed reports whether a request under key is admitted, and records the
// admission timestamp when it is.
func (l *Limiter) IsAllowed(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(key, now)

	if len(recent) >= l.maxRequests {
		l.entries[key] = recent
		return false
	}

	l.entries[key] = append(recent, now)
	return true
}

// Remaining returns how many admissions are left in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.prune(key, l.now())
	l.entries[key] = recent
	return l.maxRequests - len(recent)
}

// Reset drops all recorded admissions for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

// prune discards timestamps outside the window ending at now. Keys whose
// windows emptied are removed so idle keys don't accumulate.
func (l *Limiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)

	stamps := l.entries[key]
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	recent := stamps[i:]
	if len(recent) == 0 {
		delete(l.entries, key)
		return nil
	}
	return recent
}
