package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.SessionCreated()
	m.SessionCreated()
	m.SubmissionGraded(true)
	m.SubmissionGraded(false)
	m.SubmissionGraded(false)
	m.OperationFailed("submit", "SESSION_NOT_FOUND")
	m.ObserveLLM("problem", "gemini", "success", 200*time.Millisecond)
	m.ObserveHTTP("GET", "/health", "200", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsCreatedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("correct")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("incorrect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationErrorsTotal.WithLabelValues("submit", "SESSION_NOT_FOUND")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMRequestsTotal.WithLabelValues("problem", "gemini", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionCreated()
		m.SubmissionGraded(true)
		m.OperationFailed("create", "PERSISTENCE_ERROR")
		m.ObserveLLM("feedback", "openai", "error", time.Second)
		m.ObserveHTTP("POST", "/api/math-problem", "500", time.Second)
	})
}

func TestInitTracer_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(t.Context(), "", "test")
	assert.NoError(t, err)
	assert.NoError(t, shutdown(t.Context()))
}
