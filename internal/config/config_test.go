package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("REVEAL_ANSWER_ON_CREATE", "")

	cfg := Load()

	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.GeminiModel)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.RevealAnswerOnCreate)
	assert.False(t, cfg.LLM.Configured())
}

func TestLoad_GoogleAPIKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "g-key")

	cfg := Load()
	assert.Equal(t, "g-key", cfg.LLM.GeminiAPIKey)
	assert.True(t, cfg.LLM.Configured())
}

func TestLLMConfig_Configured(t *testing.T) {
	tests := []struct {
		name string
		cfg  LLMConfig
		want bool
	}{
		{"gemini with key", LLMConfig{Provider: ProviderGemini, GeminiAPIKey: "k"}, true},
		{"openai without key", LLMConfig{Provider: ProviderOpenAI, GeminiAPIKey: "k"}, false},
		{"anthropic with key", LLMConfig{Provider: ProviderAnthropic, AnthropicAPIKey: "k"}, true},
		{"unknown provider", LLMConfig{Provider: "ollama", OpenAIAPIKey: "k"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Configured())
		})
	}
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"http://a", "http://b"}, parseOrigins(" http://a, ,http://b "))
}

func TestGetEnvBool_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_FLAG", "maybe")
	assert.True(t, getEnvBool("SOME_FLAG", true))
	t.Setenv("SOME_FLAG", "false")
	assert.False(t, getEnvBool("SOME_FLAG", true))
}
