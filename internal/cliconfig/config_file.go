package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// friendly, and pointers for booleans so "unset" is distinguishable.
type FileConfig struct {
	WindowDuration string  `toml:"window_duration"`
	SamplingRate   float64 `toml:"sampling_rate"`
	HeartRate      float64 `toml:"heart_rate"`
	NoiseLevel     float64 `toml:"noise_level"`
	Amplitude      float64 `toml:"amplitude"`
	EnablePWave    *bool   `toml:"enable_p_wave"`
	EnableTWave    *bool   `toml:"enable_t_wave"`
	Windows        int     `toml:"windows"`

	EndpointURL  string `toml:"endpoint_url"`
	NATSSubject  string `toml:"nats_subject"`
	AuthKey      string `toml:"api_key"`
	UserID       string `toml:"user_id"`
	BatchSize    int    `toml:"batch_size"`
	SendInterval string `toml:"send_interval"`
	PollInterval string `toml:"poll_interval"`
	HTTPTimeout  string `toml:"http_timeout"`
	RetryFailed  *bool  `toml:"retry_failed"`
	Once         *bool  `toml:"once"`

	LogPath     string `toml:"log_path"`
	StateDir    string `toml:"state_dir"`
	MetricsAddr string `toml:"metrics_addr"`
	SynthOnly   *bool  `toml:"synth_only"`
	ShipOnly    *bool  `toml:"ship_only"`
	Debug       *bool  `toml:"debug"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.ecgship/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".ecgship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setDuration("window", fc.WindowDuration, &cfg.WindowDuration); err != nil {
		return err
	}
	s.setFloat("sampling-rate", fc.SamplingRate, &cfg.SamplingRate)
	s.setFloat("heart-rate", fc.HeartRate, &cfg.HeartRate)
	s.setFloat("noise-level", fc.NoiseLevel, &cfg.NoiseLevel)
	s.setFloat("amplitude", fc.Amplitude, &cfg.Amplitude)
	s.setBool("p-wave", fc.EnablePWave, &cfg.EnablePWave)
	s.setBool("t-wave", fc.EnableTWave, &cfg.EnableTWave)
	s.setInt("windows", fc.Windows, &cfg.Windows)

	s.setString("endpoint-url", fc.EndpointURL, &cfg.EndpointURL)
	s.setString("nats-subject", fc.NATSSubject, &cfg.NATSSubject)
	s.setString("auth-key", fc.AuthKey, &cfg.AuthKey)
	s.setString("user-id", fc.UserID, &cfg.UserID)
	s.setInt("batch-size", fc.BatchSize, &cfg.BatchSize)
	if err := s.setDuration("send-interval", fc.SendInterval, &cfg.SendInterval); err != nil {
		return err
	}
	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	s.setBool("retry-failed", fc.RetryFailed, &cfg.RetryFailed)
	s.setBool("once", fc.Once, &cfg.Once)

	s.setString("log-path", fc.LogPath, &cfg.LogPath)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setBool("synth-only", fc.SynthOnly, &cfg.SynthOnly)
	s.setBool("ship-only", fc.ShipOnly, &cfg.ShipOnly)
	s.setBool("debug", fc.Debug, &cfg.Debug)

	return nil
}
