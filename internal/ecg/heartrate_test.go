package ecg

import (
	"math"
	"testing"
	"time"
)

func TestEstimateHeartRate(t *testing.T) {
	sim := newTestSimulator(t, Params{
		WindowDuration: 10 * time.Second,
		SamplingRate:   250,
		HeartRate:      72,
		NoiseLevel:     0,
		Seed:           1,
	})

	bpm := EstimateHeartRate(sim.ProduceWindow())
	if math.Abs(bpm-72) > 1 {
		t.Fatalf("EstimateHeartRate = %v, want ~72", bpm)
	}
}

func TestEstimateHeartRateTooFewPeaks(t *testing.T) {
	if bpm := EstimateHeartRate(nil); bpm != 0 {
		t.Fatalf("EstimateHeartRate(nil) = %v, want 0", bpm)
	}

	sim := newTestSimulator(t, Params{
		WindowDuration: 500 * time.Millisecond,
		SamplingRate:   250,
		HeartRate:      60,
		NoiseLevel:     0,
		Seed:           1,
	})
	// Half a second at 60 BPM holds at most one beat.
	if bpm := EstimateHeartRate(sim.ProduceWindow()); bpm != 0 {
		t.Fatalf("EstimateHeartRate = %v, want 0", bpm)
	}
}
