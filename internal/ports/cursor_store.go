package ports

import (
	"context"

	"github.com/vitalwave/ecgship/internal/domain"
)

// CursorStore handles delivery-cursor persistence for crash recovery.
type CursorStore interface {
	// Load retrieves the last saved cursor.
	// Returns a zero cursor and nil error if none exists.
	// Returns an error only for actual read failures.
	Load(ctx context.Context) (domain.Cursor, error)

	// Save persists the cursor atomically. Implementations should use
	// atomic writes (temp file plus rename) to prevent corruption on crash.
	Save(ctx context.Context, cursor domain.Cursor) error
}
