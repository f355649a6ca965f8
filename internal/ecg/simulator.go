// Package ecg synthesizes a multi-component, ECG-like waveform.
//
// The signal is a cheap parametric approximation, not a physiological
// model: each beat cycle contributes additive Gaussian pulses for the QRS
// complex (and optionally P and T waves), and independent Gaussian noise is
// added per sample. Per-beat recomputation keeps the door open for
// heart-rate and amplitude jitter without restructuring the generator.
package ecg

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/vitalwave/ecgship/internal/domain"
)

// Fixed component timing and shape constants, relative to the beat center
// (seconds for offsets and widths, fractions of the amplitude scale for
// pulse heights).
const (
	qOffset = -0.05
	qScale  = -0.5
	qWidth  = 0.02

	rWidth = 0.03

	sOffset = 0.05
	sScale  = -0.3
	sWidth  = 0.02

	pAmplitude = 0.1
	pWidth     = 0.1

	tOffset    = 0.4
	tAmplitude = -0.3
	tWidth     = 0.15
)

// Params configures a Simulator.
type Params struct {
	// WindowDuration is the length of one synthesis window.
	WindowDuration time.Duration

	// SamplingRate is the number of samples per second.
	SamplingRate float64

	// HeartRate is the simulated heart rate in beats per minute.
	HeartRate float64

	// NoiseLevel is the standard deviation of the per-sample Gaussian noise.
	NoiseLevel float64

	// Amplitude is the global amplitude scale applied to the QRS complex.
	Amplitude float64

	// EnablePWave adds a P wave at each beat center.
	EnablePWave bool

	// EnableTWave adds a T wave 0.4s after each beat center.
	EnableTWave bool

	// Seed seeds the noise source. Zero means time-seeded.
	Seed int64
}

// Simulator produces successive fixed-duration windows of waveform samples.
// NoiseLevel and Amplitude may be retuned while running; all other
// parameters are fixed at construction.
type Simulator struct {
	duration     float64
	samplingRate float64
	heartRate    float64
	pWave        bool
	tWave        bool

	mu        sync.Mutex
	noise     float64
	amplitude float64
	rng       *rand.Rand
}

// NewSimulator validates params and builds a Simulator.
// Non-positive heart rate, sampling rate, or window duration are
// configuration errors, caught here rather than surfacing as a
// divide-by-zero mid-loop.
func NewSimulator(p Params) (*Simulator, error) {
	if p.HeartRate <= 0 {
		return nil, fmt.Errorf("%w: heart rate must be positive, got %v", domain.ErrInvalidConfig, p.HeartRate)
	}
	if p.SamplingRate <= 0 {
		return nil, fmt.Errorf("%w: sampling rate must be positive, got %v", domain.ErrInvalidConfig, p.SamplingRate)
	}
	if p.WindowDuration <= 0 {
		return nil, fmt.Errorf("%w: window duration must be positive, got %v", domain.ErrInvalidConfig, p.WindowDuration)
	}
	if p.NoiseLevel < 0 {
		return nil, fmt.Errorf("%w: noise level must not be negative, got %v", domain.ErrInvalidConfig, p.NoiseLevel)
	}
	if p.Amplitude == 0 {
		p.Amplitude = 1.0
	}
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		duration:     p.WindowDuration.Seconds(),
		samplingRate: p.SamplingRate,
		heartRate:    p.HeartRate,
		pWave:        p.EnablePWave,
		tWave:        p.EnableTWave,
		noise:        p.NoiseLevel,
		amplitude:    p.Amplitude,
		rng:          rand.New(rand.NewSource(seed)),
	}, nil
}

// WindowDuration returns the configured window length.
func (s *Simulator) WindowDuration() time.Duration {
	return time.Duration(s.duration * float64(time.Second))
}

// SetNoiseLevel retunes the noise standard deviation for subsequent windows.
// Negative values are ignored.
func (s *Simulator) SetNoiseLevel(level float64) {
	if level < 0 {
		return
	}
	s.mu.Lock()
	s.noise = level
	s.mu.Unlock()
}

// SetAmplitude retunes the global amplitude scale for subsequent windows.
// Non-positive values are ignored.
func (s *Simulator) SetAmplitude(scale float64) {
	if scale <= 0 {
		return
	}
	s.mu.Lock()
	s.amplitude = scale
	s.mu.Unlock()
}

// ProduceWindow synthesizes one window of samples.
//
// The time axis has N = floor(duration*rate) evenly spaced points covering
// [0, duration). Each beat cycle i in 0..floor(beats)-1 centers at
// i*60/heartRate and contributes its Gaussian components additively;
// components may overlap across cycle boundaries. Noise is added last.
// A window too short for a single sample is returned empty and is still a
// valid (zero-length) append.
func (s *Simulator) ProduceWindow() []domain.Sample {
	s.mu.Lock()
	noise := s.noise
	amplitude := s.amplitude
	s.mu.Unlock()

	n := int(s.duration * s.samplingRate)
	if n < 1 {
		return nil
	}
	step := s.duration / float64(n)

	samples := make([]domain.Sample, n)
	for i := range samples {
		samples[i].Time = float64(i) * step
	}

	beats := int(s.duration * s.heartRate / 60)
	for b := 0; b < beats; b++ {
		center := float64(b) * 60 / s.heartRate
		for i := range samples {
			x := samples[i].Time
			v := gaussianWave(x, center+qOffset, qScale*amplitude, qWidth) +
				gaussianWave(x, center, amplitude, rWidth) +
				gaussianWave(x, center+sOffset, sScale*amplitude, sWidth)
			if s.pWave {
				v += gaussianWave(x, center, pAmplitude, pWidth)
			}
			if s.tWave {
				v += gaussianWave(x, center+tOffset, tAmplitude, tWidth)
			}
			samples[i].Amplitude += v
		}
	}

	if noise > 0 {
		s.mu.Lock()
		for i := range samples {
			samples[i].Amplitude += s.rng.NormFloat64() * noise
		}
		s.mu.Unlock()
	}

	return samples
}

// gaussianWave evaluates amplitude * exp(-(x-center)^2 / (2*width^2)).
func gaussianWave(x, center, amplitude, width float64) float64 {
	d := x - center
	return amplitude * math.Exp(-(d*d)/(2*width*width))
}
