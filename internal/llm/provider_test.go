package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stemsi/mathsession-backend/internal/config"
	"github.com/stemsi/mathsession-backend/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingProvider waits for the context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (blockingProvider) Name() string    { return "blocking" }
func (blockingProvider) ModelID() string { return "blocking-1" }

func TestWithTimeout_MapsDeadlineToUnavailable(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 20*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	var unavailable *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithTimeout_ZeroIsPassThrough(t *testing.T) {
	mock := NewMockProvider()
	assert.Same(t, mock, WithTimeout(mock, 0))
}

func TestWithInstrumentation_RecordsOutcome(t *testing.T) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	mock := NewMockProvider(
		MockResponse{Text: "hello"},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	p := WithInstrumentation(mock, zerolog.Nop(), metrics)

	ctx := WithPurpose(context.Background(), PurposeFeedback)

	resp, err := p.Generate(ctx, Request{Prompt: "a"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text)

	_, err = p.Generate(ctx, Request{Prompt: "b"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LLMRequestsTotal.WithLabelValues("feedback", "mock", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LLMRequestsTotal.WithLabelValues("feedback", "mock", "error")))
	assert.Equal(t, "mock", p.Name())
}

func TestPurposeFrom_Default(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, PurposeProblem, PurposeFrom(WithPurpose(context.Background(), PurposeProblem)))
}

func TestNewProvider_NotConfigured(t *testing.T) {
	_, err := NewProvider(context.Background(), config.LLMConfig{Provider: config.ProviderOpenAI}, zerolog.Nop(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewProvider_OpenAI(t *testing.T) {
	p, err := NewProvider(context.Background(), config.LLMConfig{
		Provider:     config.ProviderOpenAI,
		OpenAIAPIKey: "k",
		OpenAIModel:  "gpt-4o-mini",
		Timeout:      time.Second,
	}, zerolog.Nop(), nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, "gpt-4o-mini", p.ModelID())
}

func TestMockProvider_FIFOAndExhaustion(t *testing.T) {
	m := NewMockProvider(MockResponse{Text: "one"})

	resp, err := m.Generate(context.Background(), Request{Prompt: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "one", resp.Text)

	_, err = m.Generate(context.Background(), Request{Prompt: "p2"})
	var unavailable *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable))
	assert.Equal(t, 2, m.CallCount())
}
