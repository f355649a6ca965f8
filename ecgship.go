// Package ecgship provides a lightweight pipeline that synthesizes an
// ECG-like waveform and ships it, in bounded batches, to a remote ingestion
// endpoint.
//
// Example usage:
//
//	cfg := ecgship.DefaultConfig()
//	cfg.EndpointURL = "https://ingest.example.com/api/ecg-data"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := ecgship.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package ecgship

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/vitalwave/ecgship/internal/adapters/clock"
	"github.com/vitalwave/ecgship/internal/adapters/csvlog"
	"github.com/vitalwave/ecgship/internal/adapters/fs"
	"github.com/vitalwave/ecgship/internal/adapters/httpapi"
	"github.com/vitalwave/ecgship/internal/adapters/natsapi"
	"github.com/vitalwave/ecgship/internal/app"
	"github.com/vitalwave/ecgship/internal/cliconfig"
	"github.com/vitalwave/ecgship/internal/domain"
	"github.com/vitalwave/ecgship/internal/ecg"
	"github.com/vitalwave/ecgship/internal/ports"
	"github.com/vitalwave/ecgship/pkg/log"
)

// Config holds the configuration for the pipeline.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// State re-exports the lifecycle state for callers polling Status.
type State = app.State

// Lifecycle states.
const (
	StateStopped  = app.StateStopped
	StateStarting = app.StateStarting
	StateRunning  = app.StateRunning
	StateStopping = app.StateStopping
	StateCrashed  = app.StateCrashed
)

// Errors re-exported for callers of the public API.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Pipeline wires the synthesizer and shipper to their adapters and manages
// their lifecycle.
type Pipeline struct {
	runner   *app.Runner
	tunables *app.Tunables
	sim      *ecg.Simulator
	closers  []func()
}

// New builds a pipeline from a validated config. Depending on cfg.SynthOnly
// and cfg.ShipOnly it contains one or both components; the two sides share
// only the record log, so they may also run as separate processes pointed
// at the same log path.
func New(cfg Config, logger log.Logger) (*Pipeline, error) {
	sysClock := clock.New()
	recordLog := csvlog.New(cfg.LogPath, logger)
	tunables := app.NewTunables(cfg.BatchSize, cfg.SendInterval, cfg.PollInterval)

	p := &Pipeline{tunables: tunables}
	var components []app.Component

	if !cfg.ShipOnly {
		sim, err := ecg.NewSimulator(ecg.Params{
			WindowDuration: cfg.WindowDuration,
			SamplingRate:   cfg.SamplingRate,
			HeartRate:      cfg.HeartRate,
			NoiseLevel:     cfg.NoiseLevel,
			Amplitude:      cfg.Amplitude,
			EnablePWave:    cfg.EnablePWave,
			EnableTWave:    cfg.EnableTWave,
			Seed:           cfg.Seed,
		})
		if err != nil {
			return nil, err
		}
		p.sim = sim
		components = append(components, app.NewSynthesizer(sim, recordLog, sysClock, logger, cfg.Windows))
	}

	if !cfg.SynthOnly {
		sender, err := p.buildSender(cfg, logger)
		if err != nil {
			return nil, err
		}
		cursors := fs.NewCursorFileStore(cfg.StateDir)
		shipCfg := app.ShipperConfig{
			Meta: ports.SendMetadata{
				EndpointURL: cfg.EndpointURL,
				UserID:      cfg.UserID,
				AuthKey:     cfg.AuthKey,
				Hostname:    hostname(),
			},
			RetryFailed: cfg.RetryFailed,
			Once:        cfg.Once,
		}
		components = append(components, app.NewShipper(shipCfg, recordLog, sender, cursors, tunables, sysClock, logger))
	}

	if len(components) == 0 {
		return nil, fmt.Errorf("no components to run")
	}

	p.runner = app.NewRunner(logger, components...)
	return p, nil
}

func (p *Pipeline) buildSender(cfg Config, logger log.Logger) (ports.RecordSender, error) {
	if cfg.UseNATS() {
		sender, err := natsapi.Dial(cfg.EndpointURL, cfg.NATSSubject)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, sender.Close)
		return sender, nil
	}
	return httpapi.NewSender(&http.Client{Timeout: cfg.HTTPTimeout}, logger), nil
}

// Start launches the pipeline components. It returns immediately.
func (p *Pipeline) Start(ctx context.Context) error {
	return p.runner.Start(ctx)
}

// Stop drains in-flight work and joins all component goroutines.
func (p *Pipeline) Stop() error {
	err := p.runner.Stop()
	for _, c := range p.closers {
		c()
	}
	return err
}

// Wait blocks until all components have finished.
func (p *Pipeline) Wait() {
	p.runner.Wait()
}

// Status returns the current lifecycle state.
func (p *Pipeline) Status() State {
	return p.runner.State()
}

// Tunables exposes the runtime-tunable settings, for the config watcher.
func (p *Pipeline) Tunables() *app.Tunables {
	return p.tunables
}

// Simulator returns the waveform simulator, or nil in ship-only mode.
func (p *Pipeline) Simulator() *ecg.Simulator {
	return p.sim
}

// Run starts the pipeline with the given configuration and blocks until the
// context is cancelled or all components finish (once mode, window limits).
func Run(ctx context.Context, cfg Config) error {
	logger := log.NewConsoleLogger()
	p, err := New(cfg, logger)
	if err != nil {
		return err
	}
	if err := p.Start(ctx); err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
	case <-done:
	}
	if err := p.Stop(); err != nil && !errors.Is(err, ErrNotRunning) && ctx.Err() == nil {
		return err
	}
	return nil
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
