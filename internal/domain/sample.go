package domain

import "time"

// Sample is a single synthesized waveform point.
// Time is in seconds and monotonic within one window; it resets to zero at
// every window boundary, so consumers must rely on record order rather than
// a globally monotonic time axis.
type Sample struct {
	// Time is the sample position in seconds within its window.
	Time float64

	// Amplitude is the dimensionless signal value.
	Amplitude float64
}

// OutboundRecord is the wire shape of a sample: the window-local time is
// dropped and a wall-clock timestamp is attached at enrichment time.
type OutboundRecord struct {
	Timestamp string  `json:"timestamp"`
	Signal    float64 `json:"ecg_signal"`
}

// Envelope wraps a batch of outbound records with a user identity.
// It is used only when a user id is configured.
type Envelope struct {
	UserID string           `json:"user_id"`
	Data   []OutboundRecord `json:"data"`
}

// Enrich converts a sample into its outbound form, stamping it with the
// given wall-clock time in RFC3339 format.
func (s Sample) Enrich(now time.Time) OutboundRecord {
	return OutboundRecord{
		Timestamp: now.Format(time.RFC3339Nano),
		Signal:    s.Amplitude,
	}
}
