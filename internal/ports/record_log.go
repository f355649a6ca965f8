package ports

import (
	"context"

	"github.com/vitalwave/ecgship/internal/domain"
)

// RecordLog is the append-only, ordered sample store shared between the
// synthesizer (sole writer) and the shipper (sole reader). Once appended, a
// record's position and content are immutable; the log never reorders or
// deletes.
type RecordLog interface {
	// Append adds records to the end of the log. Appending zero records is
	// a valid no-op.
	Append(ctx context.Context, records []domain.Sample) error

	// ReadFrom returns all records at positions [offset, Len), in append
	// order. A log that does not exist yet yields zero records, not an
	// error. Reading twice at the same offset with no new appends returns
	// identical record sets.
	ReadFrom(ctx context.Context, offset uint64) ([]domain.Sample, error)

	// Len returns the number of records currently in the log.
	Len(ctx context.Context) (uint64, error)
}
