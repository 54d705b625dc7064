// Package llm wraps the text-generation backends used to write word problems
// and tutoring feedback behind a single Provider interface.
package llm

import (
	"context"
)

// Provider generates text for a prompt.
type Provider interface {
	// Generate sends the request to the backend and returns its raw text.
	// When Schema is set and the backend supports a structured reply mode,
	// the provider asks for JSON matching it. Callers must still validate.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name identifies the backend, e.g. "gemini".
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the backend.
type Request struct {
	// System is the system prompt.
	System string

	// Prompt is the single user turn.
	Prompt string

	// Schema is an optional JSON Schema hint for structured output.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema names a JSON Schema definition.
type Schema struct {
	// Name is kebab-case, e.g. "math-problem".
	Name       string
	Definition map[string]any
}

// Response holds the backend output.
type Response struct {
	// Text is the generated text exactly as returned.
	Text  string
	Model string
	Usage Usage
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
