package problem

import (
	"context"
	"errors"
	"testing"

	"github.com/stemsi/mathsession-backend/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	raw := "Here you go:\n```json\n{\n  \"problem_text\": \"  A bakery sold 45 cupcakes in the morning and 23 in the afternoon. How many in total?  \",\n  \"final_answer\": 68\n}\n```"

	p, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "A bakery sold 45 cupcakes in the morning and 23 in the afternoon. How many in total?", p.Text)
	assert.Equal(t, 68.0, p.Answer)
}

func TestParse_DecimalAnswer(t *testing.T) {
	p, err := Parse(`{"problem_text":"Split 5 apples between 2 kids.","final_answer":2.5}`)
	require.NoError(t, err)
	assert.Equal(t, 2.5, p.Answer)
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantParse   bool
		wantInvalid bool
	}{
		{"no object", "Sorry, I can't do that.", true, false},
		{"malformed json", `{"problem_text": "x", "final_answer": }`, true, false},
		{"answer as string", `{"problem_text":"x","final_answer":"68"}`, false, true},
		{"missing answer", `{"problem_text":"x"}`, false, true},
		{"missing text", `{"final_answer":4}`, false, true},
		{"empty text", `{"problem_text":"","final_answer":4}`, false, true},
		{"blank text", `{"problem_text":"   ","final_answer":4}`, false, true},
		{"null answer", `{"problem_text":"x","final_answer":null}`, false, true},
		{"overflowing answer", `{"problem_text":"x","final_answer":1e400}`, false, true},
		{"extra field", `{"problem_text":"x","final_answer":1,"hint":"h"}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.Error(t, err)

			var parseErr *ParseError
			var invalidErr *InvalidError
			assert.Equal(t, tt.wantParse, errors.As(err, &parseErr), "ParseError: %v", err)
			assert.Equal(t, tt.wantInvalid, errors.As(err, &invalidErr), "InvalidError: %v", err)
		})
	}
}

func TestGenerator_Generate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: `{"problem_text":"Tom has 12 marbles and gives away 5. How many are left?","final_answer":7}`,
	})
	g := NewGenerator(mock, 512)

	p, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7.0, p.Answer)

	require.Len(t, mock.Calls, 1)
	assert.Same(t, ProblemSchema, mock.Calls[0].Schema)
	assert.Equal(t, 512, mock.Calls[0].MaxTokens)
	assert.Contains(t, mock.Calls[0].Prompt, "Primary 5")
}

func TestGenerator_ProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	_, err := NewGenerator(mock, 256).Generate(context.Background())
	require.Error(t, err)

	var unavailable *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable))
	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr))
}

func TestGenerator_Configured(t *testing.T) {
	assert.False(t, NewGenerator(nil, 0).Configured())
	assert.True(t, NewGenerator(llm.NewMockProvider(), 0).Configured())

	var g *Generator
	assert.False(t, g.Configured())
}

func TestGenerator_EmptyReplyIsParseError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrEmptyResponse{Provider: "mock"}})

	_, err := NewGenerator(mock, 256).Generate(context.Background())

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}
