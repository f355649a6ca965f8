package app

import (
	"sync/atomic"
	"time"
)

// Tunables holds the shipper settings that may be retuned at runtime by the
// config watcher. Reads and writes are atomic; the shipper re-reads them
// every iteration.
type Tunables struct {
	batchSize    atomic.Int64
	sendInterval atomic.Int64
	pollInterval atomic.Int64
}

// NewTunables creates a Tunables with the given initial values.
func NewTunables(batchSize int, sendInterval, pollInterval time.Duration) *Tunables {
	t := &Tunables{}
	t.SetBatchSize(batchSize)
	t.SetSendInterval(sendInterval)
	t.SetPollInterval(pollInterval)
	return t
}

// BatchSize returns the maximum records per batch.
func (t *Tunables) BatchSize() int {
	return int(t.batchSize.Load())
}

// SetBatchSize updates the batch size. Non-positive values are ignored.
func (t *Tunables) SetBatchSize(n int) {
	if n > 0 {
		t.batchSize.Store(int64(n))
	}
}

// SendInterval returns the pause between consecutive batch sends.
func (t *Tunables) SendInterval() time.Duration {
	return time.Duration(t.sendInterval.Load())
}

// SetSendInterval updates the send interval. Non-positive values are ignored.
func (t *Tunables) SetSendInterval(d time.Duration) {
	if d > 0 {
		t.sendInterval.Store(int64(d))
	}
}

// PollInterval returns the sleep used when the log has no new records.
func (t *Tunables) PollInterval() time.Duration {
	return time.Duration(t.pollInterval.Load())
}

// SetPollInterval updates the poll interval. Non-positive values are ignored.
func (t *Tunables) SetPollInterval(d time.Duration) {
	if d > 0 {
		t.pollInterval.Store(int64(d))
	}
}
