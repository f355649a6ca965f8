package app

import (
	"context"

	"github.com/vitalwave/ecgship/internal/ecg"
	"github.com/vitalwave/ecgship/internal/ports"
	"github.com/vitalwave/ecgship/pkg/metrics"
)

// Synthesizer is the producing half of the pipeline: it synthesizes one
// waveform window per iteration, appends it to the record log, and sleeps
// for the window duration to model a fixed-rate real-time source.
//
// It holds exclusive append rights on the log and never touches the
// delivery cursor.
type Synthesizer struct {
	sim        *ecg.Simulator
	log        ports.RecordLog
	clock      ports.Clock
	logger     ports.Logger
	maxWindows int
}

// NewSynthesizer creates a synthesizer. maxWindows bounds the number of
// windows produced; zero means run until cancelled.
func NewSynthesizer(sim *ecg.Simulator, recordLog ports.RecordLog, clock ports.Clock, logger ports.Logger, maxWindows int) *Synthesizer {
	return &Synthesizer{
		sim:        sim,
		log:        recordLog,
		clock:      clock,
		logger:     logger,
		maxWindows: maxWindows,
	}
}

// Name identifies the component in logs.
func (s *Synthesizer) Name() string { return "synthesizer" }

// Run executes the synthesis loop until cancelled or the window limit is
// reached. An append failure is logged and retried on the next window; it
// never crosses into the shipper.
func (s *Synthesizer) Run(ctx context.Context) error {
	produced := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		window := s.sim.ProduceWindow()
		if err := s.log.Append(ctx, window); err != nil {
			s.logger.Error("append window", ports.Err(err), ports.Int("samples", len(window)))
		} else {
			produced++
			metrics.WindowsProduced.Inc()
			metrics.SamplesAppended.Add(float64(len(window)))
			s.logger.Info("window produced",
				ports.Int("window", produced),
				ports.Int("samples", len(window)),
			)
			if bpm := ecg.EstimateHeartRate(window); bpm > 0 {
				s.logger.Debug("estimated heart rate", ports.Float64("bpm", bpm))
			}
		}

		if s.maxWindows > 0 && produced >= s.maxWindows {
			s.logger.Info("window limit reached", ports.Int("windows", produced))
			return nil
		}

		if err := s.clock.Sleep(ctx, s.sim.WindowDuration()); err != nil {
			return err
		}
	}
}
