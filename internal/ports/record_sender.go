package ports

import (
	"context"

	"github.com/vitalwave/ecgship/internal/domain"
)

// RecordSender transmits record batches to the ingestion endpoint.
// Implementations handle serialization and transport; they return an error
// for both transport failures and non-success responses.
type RecordSender interface {
	// Send delivers one batch. Batches must be dispatched in log order;
	// implementations must not reorder or parallelize sends.
	Send(ctx context.Context, batch domain.Batch, meta SendMetadata) error
}

// SendMetadata provides context for the send operation.
type SendMetadata struct {
	// EndpointURL is the ingestion endpoint.
	EndpointURL string

	// UserID, when set, wraps the batch in a user envelope.
	UserID string

	// AuthKey, when set, is passed as a bearer token.
	AuthKey string

	// Hostname identifies the producing agent.
	Hostname string
}
