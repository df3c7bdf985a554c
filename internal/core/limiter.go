package core

// limiter.go caps how many conversions run at once. Each conversion holds
// its whole input and output in memory, so the cap bounds peak memory under
// concurrent HTTP load.
//
// A conversion that cannot get a slot within the configured wait fails with
// ErrBusy. Drain blocks until running conversions finish and is used on
// shutdown.

import (
	"context"
	"sync/atomic"
	"time"
)

const (
	// DefaultMaxConcurrent is used when the configured limit is not positive.
	DefaultMaxConcurrent = 5

	// DefaultQueueWait is used when the configured wait is not positive.
	DefaultQueueWait = 20 * time.Second

	drainPollInterval = 50 * time.Millisecond
)

// Limiter is a counting semaphore for conversions.
type Limiter struct {
	slots  chan struct{}
	wait   time.Duration
	active atomic.Int64
}

// NewLimiter returns a Limiter allowing maxConcurrent conversions, each
// waiting at most wait for a slot.
func NewLimiter(maxConcurrent int, wait time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if wait <= 0 {
		wait = DefaultQueueWait
	}
	return &Limiter{
		slots: make(chan struct{}, maxConcurrent),
		wait:  wait,
	}
}

// Acquire takes a slot. It returns ErrBusy when the wait expires and ctx's
// error when ctx ends first. Every nil return must be paired with Release.
func (l *Limiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrBusy
	}
}

// Release frees a slot taken by Acquire.
func (l *Limiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active returns the number of running conversions.
func (l *Limiter) Active() int {
	return int(l.active.Load())
}

// Capacity returns the configured limit.
func (l *Limiter) Capacity() int {
	return cap(l.slots)
}

// Drain waits until no conversion is running or ctx ends.
func (l *Limiter) Drain(ctx context.Context) error {
	if l.Active() == 0 {
		return nil
	}

	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.Active() == 0 {
				return nil
			}
		}
	}
}

// LimiterStatus is a snapshot of a Limiter.
type LimiterStatus struct {
	Active    int `json:"active"`
	Available int `json:"available"`
	Capacity  int `json:"capacity"`
}

// Status returns the current slot usage.
func (l *Limiter) Status() LimiterStatus {
	return LimiterStatus{
		Active:    l.Active(),
		Available: cap(l.slots) - len(l.slots),
		Capacity:  cap(l.slots),
	}
}
