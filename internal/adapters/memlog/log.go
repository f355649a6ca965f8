// Package memlog implements the record log in memory. It is used in tests
// and for single-process runs where durability is not needed.
package memlog

import (
	"context"
	"sync"

	"github.com/vitalwave/ecgship/internal/domain"
)

// Log is an in-memory append-only record log.
type Log struct {
	mu      sync.RWMutex
	records []domain.Sample
}

// New creates an empty in-memory log.
func New() *Log {
	return &Log{}
}

// Append adds records to the end of the log.
func (l *Log) Append(ctx context.Context, records []domain.Sample) error {
	if len(records) == 0 {
		return nil
	}
	l.mu.Lock()
	l.records = append(l.records, records...)
	l.mu.Unlock()
	return nil
}

// ReadFrom returns a copy of every record past offset.
func (l *Log) ReadFrom(ctx context.Context, offset uint64) ([]domain.Sample, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if offset >= uint64(len(l.records)) {
		return nil, nil
	}
	tail := l.records[offset:]
	out := make([]domain.Sample, len(tail))
	copy(out, tail)
	return out, nil
}

// Len returns the number of records in the log.
func (l *Log) Len(ctx context.Context) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.records)), nil
}
