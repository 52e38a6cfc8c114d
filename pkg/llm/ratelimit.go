package llm

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	rateWindow        = time.Minute
	maxCallsPerWindow = 15
)

// RateLimiter bounds generative-service calls to a fixed budget per
// rolling window. All consumers share one instance, so bursts from the
// selector and the summarizer draw on the same budget. Exceeding the
// budget blocks the caller until the window elapses rather than
// returning an error.
type RateLimiter struct {
	mu          sync.Mutex
	windowStart time.Time
	count       int
	window      time.Duration
	limit       int
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		window: rateWindow,
		limit:  maxCallsPerWindow,
	}
}

// Acquire blocks until the current window has capacity or ctx ends.
func (l *RateLimiter) Acquire(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := time.Now()
		if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.window {
			l.windowStart = now
			l.count = 0
		}
		if l.count < l.limit {
			l.count++
			l.mu.Unlock()
			return nil
		}
		wait := l.window - now.Sub(l.windowStart)
		l.mu.Unlock()

		slog.Info("generative call budget exhausted, waiting for window", "wait", wait.Round(time.Millisecond))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
