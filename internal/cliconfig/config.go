// Package cliconfig builds the immutable process configuration from its
// three sources, in increasing precedence: TOML config file, ECGSHIP_*
// environment variables, command-line flags. Core components receive the
// validated Config by value and never read the environment themselves.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vitalwave/ecgship/internal/domain"
)

// DefaultEndpointURL is the default ingestion endpoint.
const DefaultEndpointURL = "http://localhost:3000/api/ecg-data"

// Config holds the full configuration for the ecgship pipeline.
// Use DefaultConfig() to get a Config with sensible defaults; Validate()
// must pass before the config reaches any component.
type Config struct {
	// Synthesizer parameters.
	WindowDuration time.Duration
	SamplingRate   float64
	HeartRate      float64
	NoiseLevel     float64
	Amplitude      float64
	EnablePWave    bool
	EnableTWave    bool
	Windows        int
	Seed           int64

	// Shipper parameters.
	EndpointURL  string
	NATSSubject  string
	AuthKey      string
	UserID       string
	BatchSize    int
	SendInterval time.Duration
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	RetryFailed  bool
	Once         bool

	// Shared.
	LogPath     string
	StateDir    string
	MetricsAddr string
	SynthOnly   bool
	ShipOnly    bool
	Debug       bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		WindowDuration: 10 * time.Second,
		SamplingRate:   250,
		HeartRate:      72,
		NoiseLevel:     0.05,
		Amplitude:      1.0,

		EndpointURL:  DefaultEndpointURL,
		NATSSubject:  "ecg.records",
		BatchSize:    10,
		SendInterval: 500 * time.Millisecond,
		PollInterval: 500 * time.Millisecond,
		HTTPTimeout:  30 * time.Second,
		RetryFailed:  true,

		LogPath: "ecg_data.csv",
		AuthKey: os.Getenv("ECGSHIP_AUTH_KEY"),
	}
}

// Validate checks the configuration for errors and sets derived defaults.
// Invalid values fail here, at startup, never mid-loop.
func (c *Config) Validate() error {
	if c.HeartRate <= 0 {
		return fmt.Errorf("%w: heart-rate must be positive", domain.ErrInvalidConfig)
	}
	if c.SamplingRate <= 0 {
		return fmt.Errorf("%w: sampling-rate must be positive", domain.ErrInvalidConfig)
	}
	if c.WindowDuration <= 0 {
		return fmt.Errorf("%w: window duration must be positive", domain.ErrInvalidConfig)
	}
	if c.NoiseLevel < 0 {
		return fmt.Errorf("%w: noise level must not be negative", domain.ErrInvalidConfig)
	}
	if c.Amplitude <= 0 {
		return fmt.Errorf("%w: amplitude must be positive", domain.ErrInvalidConfig)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive", domain.ErrInvalidConfig)
	}
	if c.SendInterval <= 0 {
		return fmt.Errorf("%w: send interval must be positive", domain.ErrInvalidConfig)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", domain.ErrInvalidConfig)
	}
	if c.LogPath == "" {
		return fmt.Errorf("%w: log path is required", domain.ErrInvalidConfig)
	}
	if c.SynthOnly && c.ShipOnly {
		return fmt.Errorf("%w: synth-only and ship-only are mutually exclusive", domain.ErrInvalidConfig)
	}

	if !c.SynthOnly {
		if c.EndpointURL == "" {
			return fmt.Errorf("%w: endpoint url is required", domain.ErrInvalidConfig)
		}
		c.EndpointURL = strings.TrimSuffix(c.EndpointURL, "/")
	}

	if c.StateDir == "" {
		c.StateDir = filepath.Dir(c.LogPath)
		if c.StateDir == "" {
			c.StateDir = "."
		}
	}

	return nil
}

// UseNATS reports whether the endpoint URL selects the NATS transport.
func (c *Config) UseNATS() bool {
	return strings.HasPrefix(c.EndpointURL, "nats://")
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not
// changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if
// valid. Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
