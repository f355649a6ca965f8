package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/vitalwave/ecgship"
	"github.com/vitalwave/ecgship/internal/cliconfig"
	"github.com/vitalwave/ecgship/internal/watch"
	"github.com/vitalwave/ecgship/pkg/log"
	"github.com/vitalwave/ecgship/pkg/metrics"
)

const helpDescription = `
Synthesize an ECG-like waveform and stream it to an ingestion endpoint.

Highlights:
  - Two independent loops (synthesizer, shipper) sharing only an
    append-only CSV record log, so either side can stop and resume.
  - Resumable delivery: a persisted cursor tracks how many records have
    been shipped; restarts pick up exactly where they left off.
  - Batched, ordered dispatch with configurable pacing and a choice of
    retry policies on delivery failure.
  - Configure via file (~/.ecgship/config.toml), ECGSHIP_* env vars, or
    flags; pacing and signal tunables reload live on file change.
`

var exampleUsage = strings.TrimSpace(`
  ecgship --endpoint-url http://localhost:3000/api/ecg-data
  ecgship --synth-only --windows 6 --log-path /var/lib/ecgship/ecg_data.csv
  ecgship --ship-only --once --log-path /var/lib/ecgship/ecg_data.csv
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newLogger(debugLevel bool) *log.ZerologLogger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	zl := zerolog.New(output).With().Timestamp().Logger()
	if !debugLevel {
		zl = zl.Level(zerolog.InfoLevel)
	}
	return log.NewZerologLogger(zl)
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "ecgship",
		Short:   "Synthesize an ECG-like waveform and stream it to an ingestion endpoint",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default ~/.ecgship/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg.Debug)

			// Log configuration (masking the API key).
			logCfg := cfg
			if len(logCfg.AuthKey) > 0 {
				logCfg.AuthKey = "*****"
			}
			logger.Info("configuration", log.Any("config", logCfg))

			pipeline, err := ecgship.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				watcher := watch.New(cfgFile, pipeline.Tunables(), pipeline.Simulator(), logger)
				go watcher.Run(ctx)
			}

			var metricsSrv *http.Server
			if cfg.MetricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", metrics.Handler())
				metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
				go func() {
					logger.Info("metrics listener", log.String("addr", cfg.MetricsAddr))
					if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						logger.Error("metrics listener", log.Err(err))
					}
				}()
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := pipeline.Start(ctx); err != nil {
				return fmt.Errorf("start pipeline: %w", err)
			}

			doneCh := make(chan struct{})
			go func() {
				pipeline.Wait()
				close(doneCh)
			}()

			select {
			case <-sigCh:
				logger.Info("received signal, stopping...")
				if err := pipeline.Stop(); err != nil {
					return fmt.Errorf("stop pipeline: %w", err)
				}
			case <-doneCh:
				// Completed (once mode, window limit) or crashed.
				if pipeline.Status() == ecgship.StateCrashed {
					logger.Error("pipeline crashed")
				}
			}

			if metricsSrv != nil {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer shutdownCancel()
				_ = metricsSrv.Shutdown(shutdownCtx)
			}
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.ecgship/config.toml)")

	root.Flags().DurationVar(&cfg.WindowDuration, "window", cfg.WindowDuration, "duration of one synthesis window")
	root.Flags().Float64Var(&cfg.SamplingRate, "sampling-rate", cfg.SamplingRate, "samples per second")
	root.Flags().Float64Var(&cfg.HeartRate, "heart-rate", cfg.HeartRate, "simulated heart rate in BPM")
	root.Flags().Float64Var(&cfg.NoiseLevel, "noise-level", cfg.NoiseLevel, "standard deviation of per-sample noise")
	root.Flags().Float64Var(&cfg.Amplitude, "amplitude", cfg.Amplitude, "global amplitude scale of the QRS complex")
	root.Flags().BoolVar(&cfg.EnablePWave, "p-wave", cfg.EnablePWave, "add a P wave to each beat cycle")
	root.Flags().BoolVar(&cfg.EnableTWave, "t-wave", cfg.EnableTWave, "add a T wave to each beat cycle")
	root.Flags().IntVar(&cfg.Windows, "windows", cfg.Windows, "stop after this many windows (0 = run forever)")

	root.Flags().StringVar(&cfg.EndpointURL, "endpoint-url", cfg.EndpointURL, "ingestion endpoint (http(s):// or nats://)")
	root.Flags().StringVar(&cfg.NATSSubject, "nats-subject", cfg.NATSSubject, "subject used with a nats:// endpoint")
	root.Flags().StringVar(&cfg.AuthKey, "auth-key", cfg.AuthKey, "API key passed as a bearer token")
	root.Flags().StringVar(&cfg.UserID, "user-id", cfg.UserID, "user identity wrapped around each batch")
	root.Flags().IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "maximum records per batch")
	root.Flags().DurationVar(&cfg.SendInterval, "send-interval", cfg.SendInterval, "pause between batch sends")
	root.Flags().DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "poll interval when the log has no new records")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")
	root.Flags().BoolVar(&cfg.RetryFailed, "retry-failed", cfg.RetryFailed, "retry failed batches instead of dropping them")
	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "ship available records and exit")

	root.Flags().StringVar(&cfg.LogPath, "log-path", cfg.LogPath, "path to the CSV record log")
	root.Flags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for cursor.json (defaults to the log directory)")
	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address for the Prometheus /metrics listener")
	root.Flags().BoolVar(&cfg.SynthOnly, "synth-only", cfg.SynthOnly, "run only the synthesizer")
	root.Flags().BoolVar(&cfg.ShipOnly, "ship-only", cfg.ShipOnly, "run only the shipper")
	root.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ecgship: %v\n", err)
		os.Exit(1)
	}
}
