package ports

import (
	"context"
	"time"
)

// Clock abstracts time for the loop-driven components so tests can run a
// bounded number of iterations without wall-clock delay.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time

	// Sleep blocks for d or until ctx is cancelled, whichever comes first.
	// Returns ctx.Err() when cancelled, nil otherwise.
	Sleep(ctx context.Context, d time.Duration) error
}
