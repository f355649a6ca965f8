package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/vitalwave/ecgship/internal/ports"
)

// Default backoff configuration values.
const (
	DefaultBackoffInitial = 500 * time.Millisecond
	DefaultBackoffMax     = 10 * time.Second
)

// backoff implements exponential backoff with jitter.
type backoff struct {
	clock   ports.Clock
	initial time.Duration
	max     time.Duration
	current time.Duration
}

// newBackoff creates a new backoff with the given initial and max durations.
func newBackoff(clock ports.Clock, initial, max time.Duration) *backoff {
	return &backoff{
		clock:   clock,
		initial: initial,
		max:     max,
		current: initial,
	}
}

// Sleep sleeps for the current backoff duration and increases it.
// Returns early with ctx.Err() when cancelled.
func (b *backoff) Sleep(ctx context.Context) error {
	// jitter ~ +/-20%
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	sleep := time.Duration(float64(b.current) + jitter)

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}

	return b.clock.Sleep(ctx, sleep)
}

// Reset resets the backoff to the initial duration.
func (b *backoff) Reset() {
	b.current = b.initial
}

// Current returns the current backoff duration.
func (b *backoff) Current() time.Duration {
	return b.current
}
