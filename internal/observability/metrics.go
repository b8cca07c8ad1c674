// Package observability bundles logging and Prometheus instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supportdesk_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportdesk_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ErrorsTotal tracks domain errors by code.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportdesk_errors_total",
			Help: "Total domain errors surfaced to callers",
		},
		[]string{"method", "path", "code"},
	)

	// TicketsCreatedTotal tracks created tickets by category.
	TicketsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportdesk_tickets_created_total",
			Help: "Total tickets created",
		},
		[]string{"category"},
	)

	// TicketsResolvedTotal tracks resolved tickets.
	TicketsResolvedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "supportdesk_tickets_resolved_total",
			Help: "Total tickets resolved",
		},
	)

	// ResponsesTotal tracks response mutations by action.
	ResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportdesk_responses_total",
			Help: "Total ticket response mutations",
		},
		[]string{"action"},
	)

	// AssignmentsTotal tracks round-robin agent assignments.
	AssignmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "supportdesk_agent_assignments_total",
			Help: "Total agent assignments performed",
		},
	)
)

// RecordRequest records metrics for a completed HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordError records a domain error surfaced to the caller.
func RecordError(method, path, code string) {
	ErrorsTotal.WithLabelValues(method, path, code).Inc()
}
