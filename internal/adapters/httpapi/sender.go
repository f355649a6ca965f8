// Package httpapi implements the record sender over HTTP.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/vitalwave/ecgship/internal/domain"
	"github.com/vitalwave/ecgship/internal/ports"
)

// Sender implements ports.RecordSender by POSTing batches as JSON.
//
// The body is a JSON array of outbound records, or a {"user_id","data"}
// envelope when a user identity is configured. Only status 200 and 201
// count as delivered; everything else is a delivery failure at the batch
// granularity.
type Sender struct {
	client ports.HTTPClient
	logger ports.Logger
}

// NewSender creates an HTTP sender using the given client.
func NewSender(client ports.HTTPClient, logger ports.Logger) *Sender {
	return &Sender{client: client, logger: logger}
}

// Send delivers one batch to the ingestion endpoint.
func (s *Sender) Send(ctx context.Context, batch domain.Batch, meta ports.SendMetadata) error {
	if batch.Empty() {
		return nil
	}

	var payload any = batch.Records
	if meta.UserID != "" {
		payload = domain.Envelope{UserID: meta.UserID, Data: batch.Records}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, meta.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Batch-Id", uuid.NewString())
	if meta.Hostname != "" {
		req.Header.Set("X-Agent-Hostname", meta.Hostname)
	}
	if meta.AuthKey != "" {
		req.Header.Set("Authorization", "Bearer "+meta.AuthKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status=%d body=%s", domain.ErrDeliveryFailed, resp.StatusCode, string(respBody))
	}

	return nil
}
