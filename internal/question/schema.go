package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// labelPattern keeps values that become tree labels free of whitespace and
// brackets.
const labelPattern = `^[^()\s]*$`

// documentSchema describes a question document after YAML/JSON decoding.
var documentSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []any{"id", "tree"},
	"properties": map[string]any{
		"id":    map[string]any{"type": "string", "minLength": 1},
		"text":  map[string]any{"type": "string"},
		"tree":  map[string]any{"type": "string", "minLength": 1},
		"class": map[string]any{"type": "string", "pattern": labelPattern},
		"focus": spanSchema(nil),
		"entities": map[string]any{
			"type": "array",
			"items": spanSchema(map[string]any{
				"type": map[string]any{"type": "string", "minLength": 1, "pattern": labelPattern},
			}),
		},
	},
}

func spanSchema(extra map[string]any) map[string]any {
	props := map[string]any{
		"begin": map[string]any{"type": "integer", "minimum": 0},
		"end":   map[string]any{"type": "integer", "minimum": 0},
	}
	required := []any{"begin", "end"}
	for k, v := range extra {
		props[k] = v
		required = append(required, k)
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             required,
		"properties":           props,
	}
}

var compiledDocumentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler expects a decoded JSON value, so round-trip the
	// definition through encoding/json.
	raw, err := json.Marshal(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal document schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse document schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://question-document.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
})

// validate checks a decoded JSON value against the document schema.
func validate(v any) error {
	s, err := compiledDocumentSchema()
	if err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}
	return s.Validate(v)
}
