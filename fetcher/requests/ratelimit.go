package requests

import (
	"sync"
	"time"

	"leaguelake/pkg/config"
)

// window is a single rate limiting constraint.
type window struct {
	limit         int
	resetInterval time.Duration
	count         int
	lastReset     time.Time
}

// RateLimiter holds every upstream constraint; all requests share one
// instance so the enforcement windows are counted globally.
type RateLimiter struct {
	windows []*window
	mu      sync.Mutex
}

// NewRateLimiter creates an instance from the configured windows.
func NewRateLimiter(limits config.RateLimits) *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		windows: []*window{
			{
				limit:         limits.Lower.Count,
				resetInterval: limits.Lower.ResetInterval,
				lastReset:     now,
			},
			{
				limit:         limits.Higher.Count,
				resetInterval: limits.Higher.ResetInterval,
				lastReset:     now,
			},
		},
	}
}

// Wait blocks until a request slot is available on every window.
func (r *RateLimiter) Wait() {
	for {
		if r.tryAcquire() {
			return
		}
		r.waitWindowsReset()
	}
}

// tryAcquire consumes one slot if every window has room.
func (r *RateLimiter) tryAcquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resetCounts()

	for _, w := range r.windows {
		if w.count >= w.limit {
			return false
		}
	}

	for _, w := range r.windows {
		w.count++
	}
	return true
}

// resetCounts clears any window whose interval elapsed.
func (r *RateLimiter) resetCounts() {
	now := time.Now()
	for _, w := range r.windows {
		if now.Sub(w.lastReset) >= w.resetInterval {
			w.count = 0
			w.lastReset = now
		}
	}
}

// waitWindowsReset sleeps until the most constrained window resets.
func (r *RateLimiter) waitWindowsReset() {
	r.mu.Lock()

	var waitTime time.Duration
	for _, w := range r.windows {
		if w.count < w.limit {
			continue
		}

		elapsed := time.Since(w.lastReset)
		waitTill := w.resetInterval - elapsed
		if waitTill > waitTime {
			waitTime = waitTill
		}
	}

	r.mu.Unlock()

	if waitTime > 0 {
		time.Sleep(waitTime)
	}
}
