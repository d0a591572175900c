package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mvanroy/permit-validator/constants"
)

// Schema returns the manifest JSON-Schema (draft 2020-12 subset) as a
// generic map. Document keys are constrained to the seven known attachment
// names and every declared fact must be a non-empty string.
func Schema() map[string]any {
	docProps := map[string]any{}
	for _, kind := range constants.AllKinds {
		docProps[string(kind)] = map[string]any{"type": "string", "minLength": 1}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"firstName":       map[string]any{"type": "string", "minLength": 1},
			"lastName":        map[string]any{"type": "string", "minLength": 1},
			"companyName":     map[string]any{"type": "string", "minLength": 1},
			"companyNumber":   map[string]any{"type": "string", "minLength": 1},
			"ownerName":       map[string]any{"type": "string"},
			"businessAddress": map[string]any{"type": "string"},
			"documents": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           docProps,
				"minProperties":        1,
			},
		},
		"required": []string{"firstName", "lastName", "companyName", "companyNumber", "documents"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("manifest.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("manifest.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal manifest: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("manifest does not match schema: %w", err)
	}
	return nil
}
