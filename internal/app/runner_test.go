package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vitalwave/ecgship/internal/domain"
	"github.com/vitalwave/ecgship/pkg/log"
)

// blockingComponent runs until its context is cancelled.
type blockingComponent struct {
	name    string
	started chan struct{}
}

func (c *blockingComponent) Name() string { return c.name }

func (c *blockingComponent) Run(ctx context.Context) error {
	close(c.started)
	<-ctx.Done()
	return ctx.Err()
}

// finishingComponent returns on its own, like a shipper in once mode.
type finishingComponent struct{ name string }

func (c *finishingComponent) Name() string { return c.name }

func (c *finishingComponent) Run(ctx context.Context) error { return nil }

func waitForState(t *testing.T, r *Runner, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state = %v, want %v", r.State(), want)
}

func TestRunnerStartStop(t *testing.T) {
	c := &blockingComponent{name: "loop", started: make(chan struct{})}
	r := NewRunner(log.NewNoopLogger(), c)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	<-c.started
	if got := r.State(); got != StateRunning {
		t.Fatalf("state after start = %v, want Running", got)
	}

	if err := r.Start(context.Background()); !errors.Is(err, domain.ErrAlreadyRunning) {
		t.Fatalf("second Start = %v, want ErrAlreadyRunning", err)
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if got := r.State(); got != StateStopped {
		t.Fatalf("state after stop = %v, want Stopped", got)
	}

	if err := r.Stop(); !errors.Is(err, domain.ErrNotRunning) {
		t.Fatalf("second Stop = %v, want ErrNotRunning", err)
	}
}

func TestRunnerNaturalCompletion(t *testing.T) {
	r := NewRunner(log.NewNoopLogger(), &finishingComponent{name: "once"})

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	r.Wait()
	waitForState(t, r, StateStopped)
}

func TestRunnerStopJoinsAllComponents(t *testing.T) {
	a := &blockingComponent{name: "a", started: make(chan struct{})}
	b := &blockingComponent{name: "b", started: make(chan struct{})}
	r := NewRunner(log.NewNoopLogger(), a, b)

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	<-a.started
	<-b.started

	done := make(chan error, 1)
	go func() { done <- r.Stop() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
