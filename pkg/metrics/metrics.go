// Package metrics provides Prometheus metrics for the ecgship pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ecgship"

// Custom registry to avoid the default Go runtime collectors.
var registry = prometheus.NewRegistry()

var factory = promauto.With(registry)

// Pipeline metrics.
var (
	// WindowsProduced counts synthesis windows appended to the record log.
	WindowsProduced = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "synth",
		Name:      "windows_produced_total",
		Help:      "Number of waveform windows synthesized and appended.",
	})

	// SamplesAppended counts individual samples appended to the record log.
	SamplesAppended = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "synth",
		Name:      "samples_appended_total",
		Help:      "Number of waveform samples appended to the record log.",
	})

	// BatchesSent counts successfully delivered batches.
	BatchesSent = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ship",
		Name:      "batches_sent_total",
		Help:      "Number of batches delivered to the ingestion endpoint.",
	})

	// SendFailures counts failed delivery attempts.
	SendFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ship",
		Name:      "send_failures_total",
		Help:      "Number of batch delivery attempts that failed.",
	})

	// RecordsSkipped counts malformed log rows skipped while reading.
	RecordsSkipped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ship",
		Name:      "records_skipped_total",
		Help:      "Number of malformed record log rows skipped.",
	})

	// CursorPosition reports the delivery cursor as a record count.
	CursorPosition = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ship",
		Name:      "cursor_position",
		Help:      "Delivery cursor position (records already dispatched).",
	})

	// PendingRecords reports records read but not yet dispatched.
	PendingRecords = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ship",
		Name:      "pending_records",
		Help:      "Records read from the log awaiting dispatch.",
	})
)

// Registry returns the metrics registry for custom collectors.
func Registry() *prometheus.Registry {
	return registry
}

// Handler returns an HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
