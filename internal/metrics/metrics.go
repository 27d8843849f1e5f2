package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pg_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pg_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RentPaymentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pg_rent_payments_created_total",
			Help: "Rent payments recorded, labelled by derived status",
		},
		[]string{"status"},
	)

	GapDetectionRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pg_gap_detection_runs_total",
			Help: "Number of rent gap detection computations",
		},
	)
)
