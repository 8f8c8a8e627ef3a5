package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests counts handled requests by route, method and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"path", "method", "status"},
	)
	// HTTPLatency observes request latency by route and method.
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"},
	)
	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "http_requests_rate_limited_total", Help: "Requests rejected by the rate limiter"},
	)

	// RepLogs counts rep logs applied to goals.
	RepLogs = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "reppi_rep_logs_total", Help: "Rep logs applied to goals"},
	)
	// Reps sums the reps logged.
	Reps = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "reppi_reps_total", Help: "Reps logged across all goals"},
	)
	// GoalsCompleted counts goals that crossed their target.
	GoalsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "reppi_goals_completed_total", Help: "Goals that reached their target"},
	)
	// GoalsReconciled counts goals whose counter was repaired by reconciliation.
	GoalsReconciled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "reppi_goals_reconciled_total", Help: "Goals repaired by progress reconciliation"},
	)
	// UsersRegistered counts successful registrations.
	UsersRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "reppi_users_registered_total", Help: "Successful registrations"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPLatency,
		RateLimited,
		RepLogs,
		Reps,
		GoalsCompleted,
		GoalsReconciled,
		UsersRegistered,
	)
}
