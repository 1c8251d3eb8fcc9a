// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks API latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// StreakCacheLookups counts streak cache reads by outcome.
	StreakCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_streak_cache_lookups_total",
			Help: "Total number of streak cache lookups",
		},
		[]string{"result"}, // hit, miss, error
	)
)

// RecordHTTPRequestDuration records the latency of one request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementStreakCacheLookup counts one cache read.
func IncrementStreakCacheLookup(result string) {
	StreakCacheLookups.WithLabelValues(result).Inc()
}
