package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "civicreport_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "civicreport_active_connections",
			Help: "Number of active connections",
		},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicreport_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// OtpRequests tracks OTP issuance
	OtpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicreport_otp_requests_total",
			Help: "Number of OTP requests",
		},
		[]string{"status"},
	)

	// OtpVerifications tracks OTP verification outcomes
	OtpVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicreport_otp_verifications_total",
			Help: "Number of OTP verifications",
		},
		[]string{"status"},
	)

	// ReportsCreated tracks created reports per category
	ReportsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicreport_reports_created_total",
			Help: "Number of reports created",
		},
		[]string{"category"},
	)

	// ModerationDecisions tracks moderation outcomes per actor and reason
	ModerationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicreport_moderation_decisions_total",
			Help: "Number of moderation decisions",
		},
		[]string{"action", "reason"},
	)

	// ModerationCycleFailures tracks failed worker cycles
	ModerationCycleFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "civicreport_moderation_cycle_failures_total",
			Help: "Number of moderation worker cycles that failed",
		},
	)

	// ModerationBatchSize tracks how many reports each worker cycle handled
	ModerationBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "civicreport_moderation_batch_size",
			Help:    "Number of pending reports processed per worker cycle",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)
)
