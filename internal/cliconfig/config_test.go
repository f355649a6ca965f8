package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vitalwave/ecgship/internal/domain"
)

func TestValidateDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate on defaults: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero heart rate", func(c *Config) { c.HeartRate = 0 }},
		{"negative sampling rate", func(c *Config) { c.SamplingRate = -1 }},
		{"zero window", func(c *Config) { c.WindowDuration = 0 }},
		{"negative noise", func(c *Config) { c.NoiseLevel = -0.1 }},
		{"zero amplitude", func(c *Config) { c.Amplitude = 0 }},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }},
		{"zero send interval", func(c *Config) { c.SendInterval = 0 }},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }},
		{"empty log path", func(c *Config) { c.LogPath = "" }},
		{"empty endpoint", func(c *Config) { c.EndpointURL = "" }},
		{"both only modes", func(c *Config) { c.SynthOnly = true; c.ShipOnly = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, domain.ErrInvalidConfig) {
				t.Fatalf("Validate = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateSynthOnlySkipsEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SynthOnly = true
	cfg.EndpointURL = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateTrimsEndpointSlash(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EndpointURL = "http://host:3000/api/ecg-data/"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.EndpointURL != "http://host:3000/api/ecg-data" {
		t.Fatalf("EndpointURL = %q, want trailing slash removed", cfg.EndpointURL)
	}
}

func TestValidateDerivesStateDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogPath = "/var/lib/ecgship/ecg_data.csv"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.StateDir != "/var/lib/ecgship" {
		t.Fatalf("StateDir = %q, want /var/lib/ecgship", cfg.StateDir)
	}

	cfg = DefaultConfig()
	cfg.StateDir = "/tmp/state"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.StateDir != "/tmp/state" {
		t.Fatalf("StateDir = %q, explicit value must win", cfg.StateDir)
	}
}

func TestUseNATS(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.UseNATS() {
		t.Fatal("UseNATS = true for http endpoint")
	}
	cfg.EndpointURL = "nats://localhost:4222"
	if !cfg.UseNATS() {
		t.Fatal("UseNATS = false for nats endpoint")
	}
}

func TestApplyFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
window_duration = "5s"
heart_rate = 90.0
batch_size = 50
endpoint_url = "http://example.com/ingest"
retry_failed = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.WindowDuration != 5*time.Second {
		t.Errorf("WindowDuration = %v, want 5s", cfg.WindowDuration)
	}
	if cfg.HeartRate != 90 {
		t.Errorf("HeartRate = %v, want 90", cfg.HeartRate)
	}
	if cfg.BatchSize != 50 {
		t.Errorf("BatchSize = %d, want 50", cfg.BatchSize)
	}
	if cfg.EndpointURL != "http://example.com/ingest" {
		t.Errorf("EndpointURL = %q", cfg.EndpointURL)
	}
	if cfg.RetryFailed {
		t.Error("RetryFailed = true, want false from file")
	}
	// Fields absent from the file keep their defaults.
	if cfg.SamplingRate != 250 {
		t.Errorf("SamplingRate = %v, want default 250", cfg.SamplingRate)
	}
}

func TestFlagsBeatFileConfig(t *testing.T) {
	fc := FileConfig{HeartRate: 90, BatchSize: 50}
	cfg := DefaultConfig()
	cfg.HeartRate = 120 // as if set by flag

	changed := map[string]bool{"heart-rate": true}
	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}
	if cfg.HeartRate != 120 {
		t.Fatalf("HeartRate = %v, flag value must win", cfg.HeartRate)
	}
	if cfg.BatchSize != 50 {
		t.Fatalf("BatchSize = %d, unflagged file value must apply", cfg.BatchSize)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("ECGSHIP_HEART_RATE", "85")
	t.Setenv("ECGSHIP_BATCH_SIZE", "40")
	t.Setenv("ECGSHIP_SEND_INTERVAL", "2s")
	t.Setenv("ECGSHIP_RETRY_FAILED", "false")
	t.Setenv("ECGSHIP_ENDPOINT_URL", "http://env.example/ingest")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.HeartRate != 85 {
		t.Errorf("HeartRate = %v, want 85", cfg.HeartRate)
	}
	if cfg.BatchSize != 40 {
		t.Errorf("BatchSize = %d, want 40", cfg.BatchSize)
	}
	if cfg.SendInterval != 2*time.Second {
		t.Errorf("SendInterval = %v, want 2s", cfg.SendInterval)
	}
	if cfg.RetryFailed {
		t.Error("RetryFailed = true, want false from env")
	}
	if cfg.EndpointURL != "http://env.example/ingest" {
		t.Errorf("EndpointURL = %q", cfg.EndpointURL)
	}
}

func TestApplyEnvConfigRespectsFlags(t *testing.T) {
	t.Setenv("ECGSHIP_HEART_RATE", "85")

	cfg := DefaultConfig()
	cfg.HeartRate = 100
	if err := ApplyEnvConfig(&cfg, map[string]bool{"heart-rate": true}); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}
	if cfg.HeartRate != 100 {
		t.Fatalf("HeartRate = %v, flag value must win over env", cfg.HeartRate)
	}
}

func TestApplyEnvConfigRejectsGarbage(t *testing.T) {
	t.Setenv("ECGSHIP_SEND_INTERVAL", "not-a-duration")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
		t.Fatal("ApplyEnvConfig = nil, want parse error")
	}
}
