package backend

import (
	"context"
	"sync"
	"time"
)

// throttle ensures a minimum interval between successive notifications.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// wait blocks until the interval since the previous call has elapsed. It
// returns false when ctx is cancelled first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval <= 0 {
		return ctx.Err() == nil
	}
	t.mu.Lock()
	delay := time.Until(t.next)
	if delay <= 0 {
		t.next = time.Now().Add(t.interval)
		t.mu.Unlock()
		return true
	}
	t.next = t.next.Add(t.interval)
	t.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
