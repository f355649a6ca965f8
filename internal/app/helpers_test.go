package app

import (
	"context"
	"sync"
	"time"

	"github.com/vitalwave/ecgship/internal/domain"
	"github.com/vitalwave/ecgship/internal/ports"
)

// instantClock makes every sleep return immediately so loop tests run a
// bounded number of iterations without wall-clock delay.
type instantClock struct{}

func (instantClock) Now() time.Time { return time.Now() }

func (instantClock) Sleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

// memCursorStore keeps the cursor in memory and counts saves.
type memCursorStore struct {
	mu     sync.Mutex
	cursor domain.Cursor
	saves  int
}

func (s *memCursorStore) Load(ctx context.Context) (domain.Cursor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, nil
}

func (s *memCursorStore) Save(ctx context.Context, cursor domain.Cursor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
	s.saves++
	return nil
}

func (s *memCursorStore) position() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.LastSentIndex
}

// fakeSender records every batch it is handed. fail, when set, decides per
// call (zero-based) whether the send errors; onSend runs after each call.
type fakeSender struct {
	mu     sync.Mutex
	calls  []domain.Batch
	fail   func(call int) error
	onSend func(call int)
}

func (f *fakeSender) Send(ctx context.Context, batch domain.Batch, _ ports.SendMetadata) error {
	f.mu.Lock()
	call := len(f.calls)
	f.calls = append(f.calls, batch)
	fail := f.fail
	onSend := f.onSend
	f.mu.Unlock()

	if onSend != nil {
		onSend(call)
	}
	if fail != nil {
		return fail(call)
	}
	return nil
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSender) recordsSent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.calls {
		n += b.Size()
	}
	return n
}

func (f *fakeSender) batchSizes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	sizes := make([]int, len(f.calls))
	for i, b := range f.calls {
		sizes[i] = b.Size()
	}
	return sizes
}
