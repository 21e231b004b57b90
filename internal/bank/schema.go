package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema describes one bank document: a domain name plus its
// question list. The objective/subjective split is structural: a
// question either has 2+ options with a correct_index, or no options
// at all.
var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"domain": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "integer", "minimum": 1},
					"text": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string", "minLength": 1},
					},
					"correct_index": map[string]any{"type": "integer", "minimum": 0},
					"topic":         map[string]any{"type": "string", "minLength": 1},
					"difficulty": map[string]any{
						"type": "string",
						"enum": []any{"easy", "medium", "hard"},
					},
					"category": map[string]any{"type": "string"},
				},
				"required":             []any{"id", "text", "topic", "difficulty"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"domain", "questions"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledBankSchema compiles the bank schema once and caches it.
func compiledBankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any),
		// not raw bytes. Marshal then unmarshal to get a clean
		// representation.
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://question-bank.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// ValidateDocument checks raw bank JSON against the bank schema.
func ValidateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledBankSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
