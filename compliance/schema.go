// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compliance

import (
	"bytes"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const reportSchemaURL = "https://brandhub.waykeeper.local/schemas/brand-image-report.json"

// the model only has to get the parts right that are used for scoring,
// everything else is passed through
const reportSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["sections"],
  "properties": {
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["key"],
        "properties": {
          "key": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "score": {"type": "number"},
          "summary": {"type": "string"},
          "items": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "id": {"type": "string"},
                "label": {"type": "string"},
                "pass": {"type": ["boolean", "null"]},
                "weight": {"type": "number", "minimum": 0}
              }
            }
          }
        }
      }
    },
    "suggestions": {"type": "object"}
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compileReportSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(reportSchema))
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(reportSchemaURL, doc); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(reportSchemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateDraft checks the raw model output against the report schema.
func ValidateDraft(raw []byte) error {
	schema, err := compileReportSchema()
	if err != nil {
		return errors.Wrap(err, "could not compile report schema")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(err, "model response is not valid JSON")
	}

	if err := schema.Validate(inst); err != nil {
		return errors.Wrap(err, "model response does not match the report schema")
	}
	return nil
}
