// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Total number of application submissions by outcome",
		},
		[]string{"outcome"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_validation_failures_total",
			Help: "Total number of failed field validations at submit time",
		},
		[]string{"field", "code"},
	)

	DocumentWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "signup_document_write_duration_seconds",
			Help:    "Duration of document store writes in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "signup_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"route", "method", "status"},
	)
)
