package app

import (
	"context"
	"errors"

	"github.com/vitalwave/ecgship/internal/domain"
	"github.com/vitalwave/ecgship/internal/ports"
)

// Component is a long-running pipeline loop managed by the Runner.
type Component interface {
	// Name identifies the component in logs.
	Name() string

	// Run blocks until the context is cancelled or the component has
	// nothing left to do (window limit, once mode).
	Run(ctx context.Context) error
}

// Runner supervises the pipeline components and drives the lifecycle state
// machine. Components run as independent goroutines sharing nothing but the
// record log.
type Runner struct {
	lifecycle  *Lifecycle
	components []Component
	logger     ports.Logger
}

// NewRunner creates a runner for the given components.
func NewRunner(logger ports.Logger, components ...Component) *Runner {
	return &Runner{
		lifecycle:  NewLifecycle(logger),
		components: components,
		logger:     logger,
	}
}

// Start launches all components. It returns immediately; use Stop or Wait
// to block. Returns ErrAlreadyRunning if already started.
func (r *Runner) Start(ctx context.Context) error {
	if !r.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := r.lifecycle.TransitionTo(StateStarting, "start requested"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.lifecycle.SetCancel(cancel)

	for _, c := range r.components {
		c := c
		r.lifecycle.AddWorker()
		go func() {
			defer r.lifecycle.WorkerDone()
			err := c.Run(runCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Error("component exited",
					ports.String("component", c.Name()),
					ports.Err(err),
				)
				return
			}
			r.logger.Info("component finished", ports.String("component", c.Name()))
		}()
	}

	if err := r.lifecycle.TransitionTo(StateRunning, "components started"); err != nil {
		return err
	}

	// Natural completion (once mode, window limits): when every component
	// returns on its own, settle into Stopped.
	go func() {
		r.lifecycle.Wait()
		if r.lifecycle.State() == StateRunning {
			_ = r.lifecycle.TransitionTo(StateStopping, "all components finished")
			_ = r.lifecycle.TransitionTo(StateStopped, "completed")
		}
	}()

	return nil
}

// Stop requests graceful shutdown: in-flight work is allowed to finish, no
// new batch is started, and all component goroutines are joined before the
// runner reports stopped. Returns ErrNotRunning when there is nothing to
// stop and ErrShutdownTimeout when draining exceeds ShutdownTimeout.
func (r *Runner) Stop() error {
	if !r.lifecycle.CanStop() {
		return domain.ErrNotRunning
	}
	if err := r.lifecycle.TransitionTo(StateStopping, "stop requested"); err != nil {
		return err
	}

	r.lifecycle.Cancel()

	if err := r.lifecycle.WaitWithTimeout(ShutdownTimeout); err != nil {
		_ = r.lifecycle.TransitionTo(StateCrashed, "shutdown timeout")
		return err
	}

	return r.lifecycle.TransitionTo(StateStopped, "stopped")
}

// Wait blocks until all components have finished.
func (r *Runner) Wait() {
	r.lifecycle.Wait()
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	return r.lifecycle.State()
}
