package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/stemsi/mathsession-backend/internal/app"
	"github.com/stemsi/mathsession-backend/internal/config"
	"github.com/stemsi/mathsession-backend/internal/handler"
	"github.com/stemsi/mathsession-backend/internal/logger"
	"github.com/stemsi/mathsession-backend/internal/observability"
	"github.com/stemsi/mathsession-backend/internal/router"
	"github.com/stemsi/mathsession-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreDriver).
		Str("llm_provider", cfg.LLM.Provider).
		Bool("reveal_answer", cfg.RevealAnswerOnCreate).
		Msg("Starting Math Session Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Tracing ───────────────────────────────────────────────────────
	shutdownTracer, err := observability.InitTracer(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}
	if cfg.OTLPEndpoint != "" {
		log.Info().Str("endpoint", cfg.OTLPEndpoint).Msg("OTLP trace export enabled")
	}

	// ─── Metrics ───────────────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	// ─── Store, Cache and LLM Provider ─────────────────────────────────
	application, err := app.Build(ctx, cfg, log, metrics)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	// ─── Initialize Handlers ──────────────────────────────────────────
	checks := make(map[string]handler.Pinger, len(application.Checks))
	for name, check := range application.Checks {
		checks[name] = handler.PingFunc(check)
	}
	handlers := &router.Handlers{
		MathProblem: handler.NewMathProblemHandler(application.Service, cfg.RevealAnswerOnCreate),
		Health:      handler.NewHealthHandler(checks, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, router.Deps{
		Log:      log,
		Metrics:  metrics,
		Gatherer: registry,
	})

	// ─── Create HTTP Server ────────────────────────────────────────────
	// WriteTimeout leaves room for one problem plus one feedback call.
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2*cfg.LLM.Timeout + 15*time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Flush pending spans.
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Tracer shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
