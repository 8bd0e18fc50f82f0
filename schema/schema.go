// Package schema validates generated ITR-1 documents against the
// portal's expected wire shape.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed itr1_schema.json
var itr1SchemaJSON []byte

// Validator checks an ITR-1 document against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("itr1_schema.json", bytes.NewReader(itr1SchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile("itr1_schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// ValidateDocument round-trips the document through JSON and validates
// the resulting wire shape.
func (v *Validator) ValidateDocument(doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	if err := v.schema.Validate(decoded); err != nil {
		return fmt.Errorf("document does not match ITR-1 schema: %w", err)
	}
	return nil
}
