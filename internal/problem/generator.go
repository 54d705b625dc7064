package problem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stemsi/mathsession-backend/internal/llm"
)

var (
	errNoObject    = errors.New("no JSON object found in response")
	errBlankText   = errors.New("problem_text is blank")
	errNotFinite   = errors.New("final_answer is not a finite number")
	errUnsupported = errors.New("unexpected document shape")
)

// Problem is a validated generator result.
type Problem struct {
	Text   string
	Answer float64
}

// Generator asks an LLM provider for one word problem and refuses anything it
// cannot fully trust.
type Generator struct {
	provider  llm.Provider
	maxTokens int
}

// NewGenerator creates a Generator. A nil provider yields an unconfigured
// generator.
func NewGenerator(provider llm.Provider, maxTokens int) *Generator {
	return &Generator{provider: provider, maxTokens: maxTokens}
}

// Configured reports whether a provider is available.
func (g *Generator) Configured() bool {
	return g != nil && g.provider != nil
}

// Generate requests a problem and validates the reply. Provider failures are
// returned wrapped; malformed replies yield *ParseError or *InvalidError.
func (g *Generator) Generate(ctx context.Context) (Problem, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeProblem)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      problemPrompt,
		Schema:      ProblemSchema,
		MaxTokens:   g.maxTokens,
		Temperature: 0.9,
	})
	if err != nil {
		var empty *llm.ErrEmptyResponse
		if errors.As(err, &empty) {
			return Problem{}, &ParseError{Err: err}
		}
		return Problem{}, fmt.Errorf("generate problem: %w", err)
	}

	return Parse(resp.Text)
}

// Parse extracts, decodes and validates a problem from raw generator text.
func Parse(raw string) (Problem, error) {
	fragment, ok := extractObject(raw)
	if !ok {
		return Problem{}, &ParseError{Raw: raw, Err: errNoObject}
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(fragment))
	if err != nil {
		return Problem{}, &ParseError{Raw: raw, Err: err}
	}

	if err := validateDocument(doc); err != nil {
		return Problem{}, &InvalidError{Fragment: fragment, Err: err}
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return Problem{}, &InvalidError{Fragment: fragment, Err: errUnsupported}
	}

	text, _ := obj["problem_text"].(string)
	text = strings.TrimSpace(text)
	if text == "" {
		return Problem{}, &InvalidError{Fragment: fragment, Err: errBlankText}
	}

	answer, err := toFloat(obj["final_answer"])
	if err != nil {
		return Problem{}, &InvalidError{Fragment: fragment, Err: err}
	}

	return Problem{Text: text, Answer: answer}, nil
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, errNotFinite
		}
		f = parsed
	case float64:
		f = n
	default:
		return 0, errUnsupported
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errNotFinite
	}
	return f, nil
}
