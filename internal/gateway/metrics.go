package gateway

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	ctxengine "github.com/flemzord/recall/internal/context"
)

// Metrics tracks assembly outcomes. Atomic counters feed the JSON status
// snapshot; the prometheus registry feeds /metrics.
type Metrics struct {
	assemblies  atomic.Int64
	empties     atomic.Int64
	truncations atomic.Int64
	errors      atomic.Int64

	registry       *prometheus.Registry
	promAssemblies *prometheus.CounterVec
	promSkipped    prometheus.Counter
	promChars      prometheus.Histogram
}

// NewMetrics creates a Metrics with its own prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		promAssemblies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recall_assemblies_total",
			Help: "Context assembly calls by outcome.",
		}, []string{"outcome"}),
		promSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recall_skipped_records_total",
			Help: "Records dropped as malformed or empty during rendering.",
		}),
		promChars: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recall_context_chars",
			Help:    "Budget characters consumed per assembled context.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		}),
	}

	m.registry.MustRegister(m.promAssemblies, m.promSkipped, m.promChars)
	return m
}

// Registry returns the prometheus registry backing /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAssembly records the outcome of one assembly call.
func (m *Metrics) RecordAssembly(res ctxengine.Result) {
	m.assemblies.Add(1)

	outcome := "context"
	switch {
	case res.Context == "":
		outcome = "empty"
		m.empties.Add(1)
	case res.Truncated:
		outcome = "truncated"
		m.truncations.Add(1)
	}

	m.promAssemblies.WithLabelValues(outcome).Inc()
	m.promSkipped.Add(float64(res.Skipped))
	if res.Context != "" {
		m.promChars.Observe(float64(res.UsedChars))
	}
}

// RecordError records a failed assembly call (store error).
func (m *Metrics) RecordError() {
	m.errors.Add(1)
	m.promAssemblies.WithLabelValues("error").Inc()
}

// Snapshot returns a consistent point-in-time view of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Assemblies:  m.assemblies.Load(),
		Empty:       m.empties.Load(),
		Truncations: m.truncations.Load(),
		Errors:      m.errors.Load(),
	}
}

// MetricsSnapshot is a serializable point-in-time metrics view.
type MetricsSnapshot struct {
	Assemblies  int64 `json:"assemblies"`
	Empty       int64 `json:"empty"`
	Truncations int64 `json:"truncations"`
	Errors      int64 `json:"errors"`
}
