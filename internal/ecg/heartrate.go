package ecg

import "github.com/vitalwave/ecgship/internal/domain"

// EstimateHeartRate recovers beats per minute from a synthesized window via
// peak detection: local maxima above half the window maximum are taken as R
// peaks and the mean spacing between them is inverted. The relative
// threshold rejects the tiny bumps where overlapping component tails cross.
// Returns 0 when fewer than two peaks are found.
//
// This is a sanity check on the generator, not a clinical measurement.
func EstimateHeartRate(samples []domain.Sample) float64 {
	var max float64
	for _, s := range samples {
		if s.Amplitude > max {
			max = s.Amplitude
		}
	}
	if max <= 0 {
		return 0
	}
	threshold := max / 2

	var peaks []float64
	for i := 1; i < len(samples)-1; i++ {
		if samples[i].Amplitude < threshold {
			continue
		}
		if samples[i].Amplitude > samples[i-1].Amplitude && samples[i].Amplitude >= samples[i+1].Amplitude {
			peaks = append(peaks, samples[i].Time)
		}
	}
	if len(peaks) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(peaks); i++ {
		total += peaks[i] - peaks[i-1]
	}
	mean := total / float64(len(peaks)-1)
	if mean <= 0 {
		return 0
	}
	return 60 / mean
}
