package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vitalwave/ecgship/internal/adapters/memlog"
	"github.com/vitalwave/ecgship/internal/domain"
	"github.com/vitalwave/ecgship/internal/ecg"
	"github.com/vitalwave/ecgship/pkg/log"
)

func newTestSimulator(t *testing.T) *ecg.Simulator {
	t.Helper()
	sim, err := ecg.NewSimulator(ecg.Params{
		WindowDuration: 100 * time.Millisecond,
		SamplingRate:   100,
		HeartRate:      72,
		NoiseLevel:     0,
		Seed:           1,
	})
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return sim
}

func TestSynthesizerStopsAtWindowLimit(t *testing.T) {
	recordLog := memlog.New()
	synth := NewSynthesizer(newTestSimulator(t), recordLog, instantClock{}, log.NewNoopLogger(), 3)

	if err := synth.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 100ms at 100Hz is 10 samples per window.
	n, err := recordLog.Len(context.Background())
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 30 {
		t.Fatalf("log length = %d, want 30", n)
	}
}

func TestSynthesizerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recordLog := memlog.New()
	synth := NewSynthesizer(newTestSimulator(t), recordLog, instantClock{}, log.NewNoopLogger(), 0)

	if err := synth.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	n, _ := recordLog.Len(context.Background())
	if n != 0 {
		t.Fatalf("log length = %d, want 0", n)
	}
}

// flakyLog fails the first append and then delegates to the real log.
type flakyLog struct {
	*memlog.Log
	failed bool
}

func (f *flakyLog) Append(ctx context.Context, records []domain.Sample) error {
	if !f.failed {
		f.failed = true
		return errors.New("disk full")
	}
	return f.Log.Append(ctx, records)
}

func TestSynthesizerSurvivesAppendFailure(t *testing.T) {
	recordLog := &flakyLog{Log: memlog.New()}
	synth := NewSynthesizer(newTestSimulator(t), recordLog, instantClock{}, log.NewNoopLogger(), 1)

	// The failed window does not count toward the limit; the next
	// iteration produces the one window we asked for.
	if err := synth.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	n, _ := recordLog.Len(context.Background())
	if n != 10 {
		t.Fatalf("log length = %d, want 10", n)
	}
}
