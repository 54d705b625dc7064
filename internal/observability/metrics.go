// Package observability holds the Prometheus metrics and OpenTelemetry
// tracing setup shared by the HTTP layer, the service and the LLM clients.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "mathsession"

// Metrics groups every collector the service exports.
// All methods are safe on a nil receiver so tests may omit metrics.
type Metrics struct {
	// HTTPRequestsTotal counts requests by method, route and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration measures handler latency by method and route.
	HTTPRequestDuration *prometheus.HistogramVec

	// LLMRequestsTotal counts generation calls.
	// Labels: purpose (problem, feedback), provider, outcome (success, error, timeout)
	LLMRequestsTotal *prometheus.CounterVec

	// LLMRequestDuration measures generation latency by purpose and provider.
	LLMRequestDuration *prometheus.HistogramVec

	// SessionsCreatedTotal counts persisted problem sessions.
	SessionsCreatedTotal prometheus.Counter

	// SubmissionsTotal counts persisted submissions by result (correct, incorrect).
	SubmissionsTotal *prometheus.CounterVec

	// OperationErrorsTotal counts failed create/submit calls by error kind.
	OperationErrorsTotal *prometheus.CounterVec
}

// NewMetrics registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "route"},
		),
		LLMRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "llm",
				Name:      "requests_total",
				Help:      "Total text generation calls by purpose, provider and outcome",
			},
			[]string{"purpose", "provider", "outcome"},
		),
		LLMRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "llm",
				Name:      "request_duration_seconds",
				Help:      "Text generation latency in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
			},
			[]string{"purpose", "provider"},
		),
		SessionsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "sessions",
				Name:      "created_total",
				Help:      "Total problem sessions persisted",
			},
		),
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "submissions",
				Name:      "total",
				Help:      "Total graded submissions persisted by result",
			},
			[]string{"result"},
		),
		OperationErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "sessions",
				Name:      "operation_errors_total",
				Help:      "Failed create/submit operations by error kind",
			},
			[]string{"operation", "kind"},
		),
	}
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLLM records one generation call.
func (m *Metrics) ObserveLLM(purpose, provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.LLMRequestsTotal.WithLabelValues(purpose, provider, outcome).Inc()
	m.LLMRequestDuration.WithLabelValues(purpose, provider).Observe(elapsed.Seconds())
}

// SessionCreated increments the created-session counter.
func (m *Metrics) SessionCreated() {
	if m == nil {
		return
	}
	m.SessionsCreatedTotal.Inc()
}

// SubmissionGraded increments the submission counter for the grading result.
func (m *Metrics) SubmissionGraded(isCorrect bool) {
	if m == nil {
		return
	}
	result := "incorrect"
	if isCorrect {
		result = "correct"
	}
	m.SubmissionsTotal.WithLabelValues(result).Inc()
}

// OperationFailed increments the error counter for an operation.
func (m *Metrics) OperationFailed(operation, kind string) {
	if m == nil {
		return
	}
	m.OperationErrorsTotal.WithLabelValues(operation, kind).Inc()
}
