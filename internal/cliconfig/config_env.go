package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (ECGSHIP_*). It respects flags that have been explicitly set (changed
// map). Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setDuration("window", os.Getenv("ECGSHIP_WINDOW_DURATION"), &cfg.WindowDuration); err != nil {
		return err
	}
	if err := s.setFloatFromString("sampling-rate", os.Getenv("ECGSHIP_SAMPLING_RATE"), &cfg.SamplingRate); err != nil {
		return err
	}
	if err := s.setFloatFromString("heart-rate", os.Getenv("ECGSHIP_HEART_RATE"), &cfg.HeartRate); err != nil {
		return err
	}
	if err := s.setFloatFromString("noise-level", os.Getenv("ECGSHIP_NOISE_LEVEL"), &cfg.NoiseLevel); err != nil {
		return err
	}
	if err := s.setFloatFromString("amplitude", os.Getenv("ECGSHIP_AMPLITUDE"), &cfg.Amplitude); err != nil {
		return err
	}
	s.setBoolFromString("p-wave", os.Getenv("ECGSHIP_ENABLE_P_WAVE"), &cfg.EnablePWave)
	s.setBoolFromString("t-wave", os.Getenv("ECGSHIP_ENABLE_T_WAVE"), &cfg.EnableTWave)
	if err := s.setIntFromString("windows", os.Getenv("ECGSHIP_WINDOWS"), &cfg.Windows); err != nil {
		return err
	}

	s.setString("endpoint-url", os.Getenv("ECGSHIP_ENDPOINT_URL"), &cfg.EndpointURL)
	s.setString("nats-subject", os.Getenv("ECGSHIP_NATS_SUBJECT"), &cfg.NATSSubject)
	s.setString("auth-key", os.Getenv("ECGSHIP_AUTH_KEY"), &cfg.AuthKey)
	s.setString("user-id", os.Getenv("ECGSHIP_USER_ID"), &cfg.UserID)
	if err := s.setIntFromString("batch-size", os.Getenv("ECGSHIP_BATCH_SIZE"), &cfg.BatchSize); err != nil {
		return err
	}
	if err := s.setDuration("send-interval", os.Getenv("ECGSHIP_SEND_INTERVAL"), &cfg.SendInterval); err != nil {
		return err
	}
	if err := s.setDuration("poll", os.Getenv("ECGSHIP_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("ECGSHIP_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	s.setBoolFromString("retry-failed", os.Getenv("ECGSHIP_RETRY_FAILED"), &cfg.RetryFailed)
	s.setBoolFromString("once", os.Getenv("ECGSHIP_ONCE"), &cfg.Once)

	s.setString("log-path", os.Getenv("ECGSHIP_LOG_PATH"), &cfg.LogPath)
	s.setString("state-dir", os.Getenv("ECGSHIP_STATE_DIR"), &cfg.StateDir)
	s.setString("metrics-addr", os.Getenv("ECGSHIP_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setBoolFromString("synth-only", os.Getenv("ECGSHIP_SYNTH_ONLY"), &cfg.SynthOnly)
	s.setBoolFromString("ship-only", os.Getenv("ECGSHIP_SHIP_ONLY"), &cfg.ShipOnly)
	s.setBoolFromString("debug", os.Getenv("ECGSHIP_DEBUG"), &cfg.Debug)

	return nil
}
