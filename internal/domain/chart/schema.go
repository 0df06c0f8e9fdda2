package chart

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidDocument indicates a document that does not match the canonical
// serialization.
var ErrInvalidDocument = errors.New("invalid chart document")

const documentSchemaURL = "https://roadmap.local/schemas/chart.json"

const documentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://roadmap.local/schemas/chart.json",
  "type": "object",
  "required": ["mineral_type", "start_stage", "question", "stages", "total_duration"],
  "additionalProperties": false,
  "properties": {
    "mineral_type": {
      "type": "object",
      "required": ["id", "name", "code"],
      "additionalProperties": false,
      "properties": {
        "id": { "type": "integer" },
        "name": { "type": "string" },
        "code": { "type": "string" }
      }
    },
    "start_stage": {
      "type": "object",
      "required": ["id", "name"],
      "additionalProperties": false,
      "properties": {
        "id": { "type": "integer" },
        "name": { "type": "string" }
      }
    },
    "question": {
      "type": ["object", "null"],
      "required": ["id", "text", "code"],
      "additionalProperties": false,
      "properties": {
        "id": { "type": "integer" },
        "text": { "type": "string" },
        "code": { "type": "string" }
      }
    },
    "stages": {
      "type": "array",
      "minItems": 1,
      "items": { "$ref": "#/$defs/stage" }
    },
    "total_duration": { "type": "integer", "minimum": 0 }
  },
  "$defs": {
    "stage": {
      "type": "object",
      "required": ["id", "name", "order", "description", "color", "start", "duration", "total_duration", "works", "dependencies"],
      "additionalProperties": false,
      "properties": {
        "id": { "type": "integer" },
        "name": { "type": "string" },
        "order": { "type": "integer" },
        "description": { "type": "string" },
        "color": { "type": "string" },
        "start": { "type": "integer", "minimum": 0 },
        "duration": { "type": "integer", "minimum": 0 },
        "total_duration": { "type": "integer", "minimum": 0 },
        "works": { "type": "array", "items": { "$ref": "#/$defs/work" } },
        "dependencies": { "type": "array", "items": { "type": "integer" } }
      }
    },
    "work": {
      "type": "object",
      "required": ["id", "number", "title", "description", "executor", "duration_months", "start_month", "order", "start_global", "start_in_stage"],
      "additionalProperties": false,
      "properties": {
        "id": { "type": "integer" },
        "number": { "type": "string" },
        "title": { "type": "string" },
        "description": { "type": "string" },
        "executor": { "type": "string" },
        "duration_months": { "type": "integer", "minimum": 0 },
        "start_month": { "type": "integer", "minimum": 0 },
        "order": { "type": "integer" },
        "start_global": { "type": "integer", "minimum": 0 },
        "start_in_stage": { "type": "integer", "minimum": 0 }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	documentSchema *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(documentSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("unmarshal chart schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add chart schema resource: %w", err)
			return
		}
		documentSchema, schemaErr = c.Compile(documentSchemaURL)
	})
	return documentSchema, schemaErr
}

// ValidateDocument checks that doc serializes to the canonical chart shape.
func ValidateDocument(doc Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	return ValidateEncoded(data)
}

// ValidateEncoded checks a serialized document against the chart schema.
func ValidateEncoded(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
