package llm

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/mathsession-backend/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type instrumentedProvider struct {
	inner   Provider
	log     zerolog.Logger
	metrics *observability.Metrics
}

// WithInstrumentation records a span, a log line and metrics for every call.
func WithInstrumentation(p Provider, log zerolog.Logger, metrics *observability.Metrics) Provider {
	return &instrumentedProvider{
		inner:   p,
		log:     log.With().Str("component", "llm").Str("provider", p.Name()).Logger(),
		metrics: metrics,
	}
}

func (i *instrumentedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)

	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "llm.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", i.inner.Name()),
		attribute.String("llm.model", i.inner.ModelID()),
		attribute.String("llm.purpose", purpose),
	)

	start := time.Now()
	resp, err := i.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	outcome := "success"
	if err != nil {
		outcome = "error"
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = "timeout"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		i.log.Warn().
			Err(err).
			Str("purpose", purpose).
			Dur("latency", elapsed).
			Msg("LLM generation failed")
	} else {
		span.SetAttributes(
			attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
			attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
		)
		i.log.Debug().
			Str("purpose", purpose).
			Str("model", resp.Model).
			Int("input_tokens", resp.Usage.InputTokens).
			Int("output_tokens", resp.Usage.OutputTokens).
			Dur("latency", elapsed).
			Msg("LLM generation completed")
	}

	i.metrics.ObserveLLM(purpose, i.inner.Name(), outcome, elapsed)
	return resp, err
}

func (i *instrumentedProvider) Name() string { return i.inner.Name() }

func (i *instrumentedProvider) ModelID() string { return i.inner.ModelID() }
