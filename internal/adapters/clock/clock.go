// Package clock provides the system implementation of the Clock port.
package clock

import (
	"context"
	"time"
)

// System is the real wall-clock implementation.
type System struct{}

// New returns a system clock.
func New() System {
	return System{}
}

// Now returns the current time.
func (System) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d or until ctx is cancelled.
func (System) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
