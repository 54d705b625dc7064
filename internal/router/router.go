package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stemsi/mathsession-backend/internal/config"
	"github.com/stemsi/mathsession-backend/internal/handler"
	"github.com/stemsi/mathsession-backend/internal/middleware"
	"github.com/stemsi/mathsession-backend/internal/observability"
	"github.com/stemsi/mathsession-backend/internal/response"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	MathProblem *handler.MathProblemHandler
	Health      *handler.HealthHandler
}

// Deps carries the shared infrastructure the middleware chain needs.
type Deps struct {
	Log      zerolog.Logger
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config, deps Deps) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// ─── Observability ─────────────────────────────────────────────────
	router.Use(
		response.RequestIDMiddleware(),
		otelgin.Middleware(cfg.ServiceName),
		middleware.AccessLog(deps.Log),
		middleware.Metrics(deps.Metrics),
	)

	router.Use(middleware.Brotli())

	router.GET("/health", handlers.Health.Health)
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// ─── 1. Legacy Group (web client routes) ───────────────────────────
	legacy := router.Group("/api")
	legacy.Use(middleware.NoStore())
	{
		legacy.GET("/math-problem", handlers.MathProblem.CreateSession)
		legacy.POST("/math-problem", handlers.MathProblem.SubmitAnswer)
	}

	// ─── 2. Versioned Group ────────────────────────────────────────────
	v1 := router.Group("/api/v1")
	v1.Use(middleware.NoStore())
	{
		v1.POST("/sessions", handlers.MathProblem.CreateSession)
		v1.POST("/sessions/:id/submissions", handlers.MathProblem.SubmitForSession)
		v1.GET("/sessions/:id/submissions", handlers.MathProblem.ListSubmissions)
	}

	return router
}
