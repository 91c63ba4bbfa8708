package middleware

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimiter sheds load once more than max requests are in flight.
// A request waits up to timeout for a slot before it is rejected with 503.
type ConcurrencyLimiter struct {
	sem     *semaphore.Weighted
	timeout time.Duration
	onShed  func()
}

// NewConcurrencyLimiter creates a limiter admitting max concurrent requests.
func NewConcurrencyLimiter(max int64, timeout time.Duration, onShed func()) *ConcurrencyLimiter {
	return &ConcurrencyLimiter{
		sem:     semaphore.NewWeighted(max),
		timeout: timeout,
		onShed:  onShed,
	}
}

// Wrap wraps next with the limiter.
func (l *ConcurrencyLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), l.timeout)
		err := l.sem.Acquire(ctx, 1)
		cancel()
		if err != nil {
			if l.onShed != nil {
				l.onShed()
			}
			writeJSONError(w, http.StatusServiceUnavailable, "server busy")
			return
		}
		defer l.sem.Release(1)

		next.ServeHTTP(w, r)
	})
}
