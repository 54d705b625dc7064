package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/mathsession-backend/internal/config"
	"github.com/stemsi/mathsession-backend/internal/observability"
)

// ErrNotConfigured is returned when the selected provider has no credentials.
var ErrNotConfigured = errors.New("llm provider not configured")

// NewProvider creates the configured Provider wrapped with timeout and
// instrumentation: caller → instrumentation → timeout → base.
func NewProvider(ctx context.Context, cfg config.LLMConfig, log zerolog.Logger, metrics *observability.Metrics) (Provider, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("%w: %q", ErrNotConfigured, cfg.Provider)
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case config.ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	case config.ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithInstrumentation(WithTimeout(base, cfg.Timeout), log, metrics), nil
}
