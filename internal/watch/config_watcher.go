// Package watch re-applies tunable configuration while the pipeline runs.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vitalwave/ecgship/internal/app"
	"github.com/vitalwave/ecgship/internal/cliconfig"
	"github.com/vitalwave/ecgship/internal/ecg"
	"github.com/vitalwave/ecgship/internal/ports"
)

const debounceDelay = 100 * time.Millisecond

// ConfigWatcher monitors the TOML config file via fsnotify and applies the
// tunable subset (noise level, amplitude, batch size, send/poll interval)
// to the running components. Everything else in the file still requires a
// restart.
type ConfigWatcher struct {
	path     string
	tunables *app.Tunables
	sim      *ecg.Simulator
	logger   ports.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// New creates a watcher for the config file at path. sim may be nil when
// the synthesizer is not running in this process.
func New(path string, tunables *app.Tunables, sim *ecg.Simulator, logger ports.Logger) *ConfigWatcher {
	return &ConfigWatcher{
		path:     path,
		tunables: tunables,
		sim:      sim,
		logger:   logger,
	}
}

// Run watches the config file's directory until ctx is cancelled. Watching
// the directory rather than the file survives editors that replace the file
// on save.
func (w *ConfigWatcher) Run(ctx context.Context) {
	if w.path == "" {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Error("config watcher: create watcher", ports.Err(err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		w.logger.Error("config watcher: watch dir",
			ports.String("dir", filepath.Dir(w.path)),
			ports.Err(err),
		)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceApply(debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher: error", ports.Err(err))
		}
	}
}

func (w *ConfigWatcher) debounceApply(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(delay, w.apply)
}

func (w *ConfigWatcher) apply() {
	fc, err := cliconfig.LoadFileConfig(w.path)
	if err != nil {
		w.logger.Warn("config watcher: reload failed", ports.Err(err))
		return
	}

	if fc.BatchSize > 0 {
		w.tunables.SetBatchSize(fc.BatchSize)
	}
	if d, err := time.ParseDuration(fc.SendInterval); err == nil && d > 0 {
		w.tunables.SetSendInterval(d)
	}
	if d, err := time.ParseDuration(fc.PollInterval); err == nil && d > 0 {
		w.tunables.SetPollInterval(d)
	}
	if w.sim != nil {
		if fc.NoiseLevel > 0 {
			w.sim.SetNoiseLevel(fc.NoiseLevel)
		}
		if fc.Amplitude > 0 {
			w.sim.SetAmplitude(fc.Amplitude)
		}
	}

	w.logger.Info("config watcher: applied tunables",
		ports.Int("batch_size", w.tunables.BatchSize()),
		ports.Duration("send_interval", w.tunables.SendInterval()),
		ports.Duration("poll_interval", w.tunables.PollInterval()),
	)
}
