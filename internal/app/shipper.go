package app

import (
	"context"

	"github.com/vitalwave/ecgship/internal/domain"
	"github.com/vitalwave/ecgship/internal/ports"
	"github.com/vitalwave/ecgship/pkg/metrics"
)

// ShipperConfig contains the fixed configuration for the shipping loop.
// Pacing and batch size live in Tunables so they can change at runtime.
type ShipperConfig struct {
	// Meta is attached to every send.
	Meta ports.SendMetadata

	// RetryFailed selects the offset-advance policy. When true (the
	// stronger guarantee), the cursor advances only past delivered
	// batches and a failed batch is retried after backoff. When false,
	// the cursor advances regardless of delivery outcome and a failed
	// batch is logged and dropped.
	RetryFailed bool

	// Once makes the loop exit once the log has been fully drained.
	Once bool
}

// Shipper is the consuming half of the pipeline: it reads unsent records
// from the log at the delivery cursor, enriches them, partitions them into
// bounded batches, and dispatches the batches in order.
//
// It holds exclusive read-and-advance rights on the cursor.
type Shipper struct {
	cfg      ShipperConfig
	log      ports.RecordLog
	sender   ports.RecordSender
	cursors  ports.CursorStore
	tunables *Tunables
	clock    ports.Clock
	logger   ports.Logger
}

// NewShipper creates a shipper.
func NewShipper(
	cfg ShipperConfig,
	recordLog ports.RecordLog,
	sender ports.RecordSender,
	cursors ports.CursorStore,
	tunables *Tunables,
	clock ports.Clock,
	logger ports.Logger,
) *Shipper {
	return &Shipper{
		cfg:      cfg,
		log:      recordLog,
		sender:   sender,
		cursors:  cursors,
		tunables: tunables,
		clock:    clock,
		logger:   logger,
	}
}

// Name identifies the component in logs.
func (s *Shipper) Name() string { return "shipper" }

// Run executes the shipping loop until cancelled (or, in once mode, until
// the log is drained). Each iteration reads everything past the cursor,
// dispatches it in order, and persists the advanced cursor. Delivery
// failures never halt the loop; a missing log is treated as "no records
// yet", not as an error.
func (s *Shipper) Run(ctx context.Context) error {
	cursor, err := s.cursors.Load(ctx)
	if err != nil {
		s.logger.Error("load cursor, starting from zero", ports.Err(err))
		cursor = domain.Cursor{}
	}
	s.logger.Info("shipper starting", ports.Uint64("cursor", cursor.LastSentIndex))
	metrics.CursorPosition.Set(float64(cursor.LastSentIndex))

	back := newBackoff(s.clock, DefaultBackoffInitial, DefaultBackoffMax)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		records, err := s.log.ReadFrom(ctx, cursor.LastSentIndex)
		if err != nil {
			s.logger.Warn("record log unavailable", ports.Err(err))
			if err := s.clock.Sleep(ctx, s.tunables.PollInterval()); err != nil {
				return err
			}
			continue
		}
		if len(records) == 0 {
			if s.cfg.Once {
				s.logger.Info("log drained", ports.Uint64("cursor", cursor.LastSentIndex))
				return nil
			}
			if err := s.clock.Sleep(ctx, s.tunables.PollInterval()); err != nil {
				return err
			}
			continue
		}
		metrics.PendingRecords.Set(float64(len(records)))

		now := s.clock.Now().UTC()
		outbound := make([]domain.OutboundRecord, len(records))
		for i, r := range records {
			outbound[i] = r.Enrich(now)
		}
		batches := domain.Partition(outbound, s.tunables.BatchSize())

		sent, retry := s.dispatch(ctx, batches, back)

		if sent > 0 {
			cursor.Advance(sent, s.clock.Now())
			if err := s.cursors.Save(ctx, cursor); err != nil {
				s.logger.Error("save cursor", ports.Err(err))
			}
			metrics.CursorPosition.Set(float64(cursor.LastSentIndex))
		}
		metrics.PendingRecords.Set(float64(uint64(len(records)) - sent))

		if retry {
			if err := back.Sleep(ctx); err != nil {
				return err
			}
		}
	}
}

// dispatch sends the batches in order and returns the number of records the
// cursor may advance past, plus whether a failed batch should be retried.
// A stop signal lets the in-flight batch complete but starts no new one.
func (s *Shipper) dispatch(ctx context.Context, batches []domain.Batch, back *backoff) (sent uint64, retry bool) {
	for i, batch := range batches {
		if i > 0 && ctx.Err() != nil {
			return sent, false
		}

		// The in-flight send is allowed to finish during shutdown; the
		// sender's own timeout bounds how long that can take.
		err := s.sender.Send(context.WithoutCancel(ctx), batch, s.cfg.Meta)
		if err != nil {
			metrics.SendFailures.Inc()
			s.logger.Error("batch delivery failed",
				ports.Int("records", batch.Size()),
				ports.Err(err),
			)
			if s.cfg.RetryFailed {
				// Stop here; the unsent tail is re-read from the cursor
				// and retried after backoff.
				return sent, true
			}
			// Baseline policy: mark the batch consumed anyway.
			sent += batch.RecordCount
		} else {
			metrics.BatchesSent.Inc()
			s.logger.Info("batch sent", ports.Int("records", batch.Size()))
			sent += batch.RecordCount
			back.Reset()
		}

		if i < len(batches)-1 {
			if err := s.clock.Sleep(ctx, s.tunables.SendInterval()); err != nil {
				return sent, false
			}
		}
	}
	return sent, false
}
