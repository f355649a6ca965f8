package domain

import "errors"

// Domain errors represent error conditions in the ecgship domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("ecgship: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("ecgship: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("ecgship: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	// Configuration errors are fatal at startup and never raised mid-run.
	ErrInvalidConfig = errors.New("ecgship: invalid configuration")

	// ErrSourceUnavailable is returned when the record log cannot be read.
	// It is recoverable: the shipper retries after its poll interval.
	ErrSourceUnavailable = errors.New("ecgship: record log unavailable")

	// ErrDeliveryFailed is returned when a batch could not be delivered,
	// either due to a transport error or a non-success status code.
	ErrDeliveryFailed = errors.New("ecgship: batch delivery failed")
)
