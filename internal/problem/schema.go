package problem

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stemsi/mathsession-backend/internal/llm"
)

const schemaURL = "schema://math-problem.json"

// ProblemSchema is sent to providers with a structured reply mode and used to
// validate every decoded fragment.
var ProblemSchema = &llm.Schema{
	Name: "math-problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem_text": map[string]any{
				"type":        "string",
				"description": "The word problem shown to the student",
				"minLength":   1,
			},
			"final_answer": map[string]any{
				"type":        "number",
				"description": "The single numeric answer",
			},
		},
		"required":             []any{"problem_text", "final_answer"},
		"additionalProperties": false,
	},
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants a decoded JSON document, not Go literals.
	raw, err := json.Marshal(ProblemSchema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// validateDocument checks a decoded fragment against ProblemSchema.
func validateDocument(doc any) error {
	compiled, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", ProblemSchema.Name, err)
	}
	return compiled.Validate(doc)
}
