// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EscalationsDetected counts escalations opened at creation time, by level.
	EscalationsDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solace_escalations_detected_total",
		Help: "Total number of escalations detected by the rule matcher, by level",
	}, []string{"level"})

	// EngineFailures counts engine invocations that degraded to a neutral
	// result, by component. The fail-open boundary increments this so silent
	// classification failures stay observable.
	EngineFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solace_engine_failures_total",
		Help: "Total number of escalation engine failures degraded to neutral results",
	}, []string{"component"})

	// PredictionLatency records engine computation latency by component.
	PredictionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solace_prediction_latency_seconds",
		Help:    "Escalation engine computation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"component"})

	// DBQueryLatency records database query latency observed by the GORM
	// logger.
	DBQueryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solace_db_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solace_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// TrackPrediction returns a function that records engine latency when called
// (e.g. defer).
func TrackPrediction(component string) func() {
	start := time.Now()
	return func() {
		PredictionLatency.WithLabelValues(component).Observe(time.Since(start).Seconds())
	}
}
