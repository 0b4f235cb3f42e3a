// Package ratelimit provides a minimum-interval limiter shared by every
// caller of an upstream API.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter spaces calls so that consecutive acquisitions across all goroutines
// are at least one interval apart.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	lastCall time.Time
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
}

// NewLimiter returns a limiter enforcing the given minimum gap between calls.
// A non-positive interval disables spacing.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the caller may proceed, reserving the next slot before
// sleeping so concurrent waiters line up one interval apart instead of
// stampeding when the current slot opens. It returns early with the context's
// error if the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.interval <= 0 {
		return nil
	}

	l.mu.Lock()
	now := l.now()
	earliest := l.lastCall.Add(l.interval)
	if earliest.Before(now) {
		earliest = now
	}
	l.lastCall = earliest
	l.mu.Unlock()

	if wait := earliest.Sub(now); wait > 0 {
		return l.sleep(ctx, wait)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
