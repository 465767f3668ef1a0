package middleware

import (
	"net/http"
	"sync"
	"time"
)

const rateLimitedMessage = "Too many requests. Please wait a few minutes and try again."

// RateLimiter is a process-wide fixed-window counter: up to max requests per
// window, counter reset when a request arrives after the window boundary.
// The clock is injected so the window is testable.
type RateLimiter struct {
	mu          sync.Mutex
	window      time.Duration
	max         int
	now         func() time.Time
	windowStart time.Time
	count       int
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return NewRateLimiterWithClock(window, max, time.Now)
}

// NewRateLimiterWithClock injects the clock that drives window resets.
func NewRateLimiterWithClock(window time.Duration, max int, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		window:      window,
		max:         max,
		now:         now,
		windowStart: now(),
	}
}

// Allow consumes one slot in the current window, reporting false when the
// window is exhausted.
func (l *RateLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.count = 0
	}
	if l.count >= l.max {
		return false
	}
	l.count++
	return true
}

// Limit rejects requests over the window budget with a 429.
func (l *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			JSONResponse(w, http.StatusTooManyRequests, map[string]any{
				"success": false,
				"error":   rateLimitedMessage,
			})
			return
		}
		next(w, r)
	}
}
