package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordquiz_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsByPlatform = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordquiz_http_requests_by_platform_total",
			Help: "Total number of HTTP requests by client platform",
		},
		[]string{"platform"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wordquiz_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// Storage Metrics
	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wordquiz_storage_operation_duration_seconds",
			Help:    "Duration of progress storage operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"backend", "operation"},
	)

	StorageErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordquiz_storage_errors_total",
			Help: "Total number of failed progress storage operations",
		},
		[]string{"backend", "operation"},
	)

	// Progress Metrics
	ProgressOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordquiz_progress_operations_total",
			Help: "Total number of progress store operations",
		},
		[]string{"operation", "status"}, // status: ok, invalid, error
	)

	StickersUnlockedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordquiz_stickers_unlocked_total",
			Help: "Total number of newly unlocked stickers",
		},
		[]string{"sticker"},
	)

	CorruptStateRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wordquiz_corrupt_state_recoveries_total",
			Help: "Times a stored record failed to decode and defaults were used",
		},
	)
)

// TrackStorage starts a timer for a storage operation
func TrackStorage(backend, operation string) *prometheus.Timer {
	return prometheus.NewTimer(StorageOperationDuration.WithLabelValues(backend, operation))
}

// TrackProgressOperation counts a progress store call by outcome
func TrackProgressOperation(operation, status string) {
	ProgressOperationsTotal.WithLabelValues(operation, status).Inc()
}
