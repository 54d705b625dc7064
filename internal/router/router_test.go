package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stemsi/mathsession-backend/internal/config"
	"github.com/stemsi/mathsession-backend/internal/database"
	"github.com/stemsi/mathsession-backend/internal/feedback"
	"github.com/stemsi/mathsession-backend/internal/handler"
	"github.com/stemsi/mathsession-backend/internal/llm"
	"github.com/stemsi/mathsession-backend/internal/observability"
	"github.com/stemsi/mathsession-backend/internal/problem"
	"github.com/stemsi/mathsession-backend/internal/repository"
	"github.com/stemsi/mathsession-backend/internal/response"
	"github.com/stemsi/mathsession-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, origins []string) *gin.Engine {
	t.Helper()
	db, err := database.NewSQLiteDB(context.Background(), database.MemoryDSN, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	problemLLM := llm.NewMockProvider(llm.MockResponse{Text: `{"problem_text":"3 x 4?","final_answer":12}`})
	svc := service.NewProblemSessionService(
		repository.NewSQLiteRepository(db),
		problem.NewGenerator(problemLLM, 128),
		feedback.NewGenerator(llm.NewMockProvider(), 128),
		metrics,
		zerolog.Nop(),
	)

	cfg := &config.Config{GinMode: gin.TestMode, AllowedOrigins: origins, ServiceName: "test"}
	return SetupRouter(&Handlers{
		MathProblem: handler.NewMathProblemHandler(svc, true),
		Health:      handler.NewHealthHandler(map[string]handler.Pinger{"store": handler.PingFunc(db.PingContext)}, zerolog.Nop()),
	}, cfg, Deps{Log: zerolog.Nop(), Metrics: metrics, Gatherer: reg})
}

func TestRouter_CreateThenMetrics(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/math-problem", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get(response.HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "mathsession_sessions_created_total 1")
	assert.Contains(t, body, `route="/api/math-problem"`)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"store":"up"`))
}

func TestRouter_CORSRestrictedOrigins(t *testing.T) {
	r := newTestRouter(t, []string{"https://tutor.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/api/math-problem", nil)
	req.Header.Set("Origin", "https://tutor.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://tutor.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/math-problem", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
