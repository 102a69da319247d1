package fetch

import (
	"context"
	"sync"
	"time"
)

// PollInterval is the pause taken before every API request.
const PollInterval = 750 * time.Millisecond

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Limiter is the single gate every request passes through. Wait always
// sleeps the full interval; it is not a debounce or an adaptive throttle.
// Callers are serialized on the gate, so one Limiter shared by all fetches
// keeps requests strictly one at a time.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	sleep    SleepFunc
}

// NewLimiter creates a Limiter with the given interval.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{interval: interval, sleep: sleepContext}
}

// Do waits the interval and then runs fn while holding the gate.
func (l *Limiter) Do(ctx context.Context, fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.sleep(ctx, l.interval); err != nil {
		return err
	}
	return fn()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
