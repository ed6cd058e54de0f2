// Package metrics defines the Prometheus instrumentation for the symptom
// checker server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles all collectors registered by the server.
type Metrics struct {
	// AnalysisAttempts counts every attempt against the analysis provider,
	// labelled by outcome ("success" or "failure").
	AnalysisAttempts *prometheus.CounterVec

	// AnalysisFallbacks counts submissions that exhausted all attempts and
	// were answered with the fixed fallback text.
	AnalysisFallbacks prometheus.Counter

	// RequestDuration observes inbound HTTP request latency by route and
	// status code.
	RequestDuration *prometheus.HistogramVec
}

// New registers all collectors with reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AnalysisAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analysis_attempts_total",
			Help: "Attempts against the external analysis provider, by outcome.",
		}, []string{"outcome"}),

		AnalysisFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "analysis_fallbacks_total",
			Help: "Submissions answered with the fixed fallback text after exhausting retries.",
		}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Inbound HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
}
