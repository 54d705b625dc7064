package feedback

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stemsi/mathsession-backend/internal/llm"
)

// ErrEmptyFeedback is returned when the provider answers with only whitespace.
var ErrEmptyFeedback = errors.New("feedback generator returned empty text")

// Input is the graded outcome the feedback is written for.
type Input struct {
	ProblemText   string
	CorrectAnswer float64
	UserAnswer    float64
	IsCorrect     bool
}

// Generator produces short tutoring feedback for a graded submission.
type Generator struct {
	provider  llm.Provider
	maxTokens int
}

func NewGenerator(provider llm.Provider, maxTokens int) *Generator {
	return &Generator{provider: provider, maxTokens: maxTokens}
}

// Configured reports whether a provider is available.
func (g *Generator) Configured() bool {
	return g != nil && g.provider != nil
}

// Generate returns trimmed, non-empty feedback text.
func (g *Generator) Generate(ctx context.Context, in Input) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(in),
		MaxTokens:   g.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("generate feedback: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyFeedback
	}
	return text, nil
}

// formatNumber renders 68 as "68" and 2.5 as "2.5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
