// Package natsapi implements the record sender over NATS, for deployments
// where the ingestion side consumes from a subject instead of an HTTP
// endpoint. The payload shape is identical to the HTTP sender's.
package natsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/vitalwave/ecgship/internal/domain"
	"github.com/vitalwave/ecgship/internal/ports"
)

const flushTimeout = 5 * time.Second

// Sender implements ports.RecordSender by publishing batches to a subject.
type Sender struct {
	conn    *nats.Conn
	subject string
}

// Dial connects to the NATS server at url and returns a sender publishing
// to subject.
func Dial(url, subject string) (*Sender, error) {
	conn, err := nats.Connect(
		url,
		nats.Name("ecgship"),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Sender{conn: conn, subject: subject}, nil
}

// Send publishes one batch and flushes so delivery failures surface here
// rather than silently queueing forever.
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

	if err := s.conn.Publish(s.subject, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	if err := s.conn.FlushTimeout(flushTimeout); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// Close drains the connection.
func (s *Sender) Close() {
	s.conn.Close()
}
