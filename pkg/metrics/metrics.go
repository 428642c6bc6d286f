package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	EntityMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_mutation_count",
			Help: "Total number of entity mutations",
		},
		[]string{"entity", "operation"}, // operation: create, update, delete, link
	)

	LoginAttemptCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempt_count",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"}, // outcome: success, rejected
	)
)

// RecordHTTPRequestDuration records the latency of one handled request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementEntityMutation counts one create/update/delete/link on an entity.
func IncrementEntityMutation(entity, operation string) {
	EntityMutationCount.WithLabelValues(entity, operation).Inc()
}

// IncrementLoginAttempt counts one login attempt by outcome.
func IncrementLoginAttempt(outcome string) {
	LoginAttemptCount.WithLabelValues(outcome).Inc()
}
