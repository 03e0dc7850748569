package dashgrid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SettingsValidator validates widget settings against the catalog schema.
type SettingsValidator interface {
	Validate(entry CatalogEntry, settings map[string]any) error
}

// JSONSchemaValidator compiles catalog schemas and validates settings maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the provided settings satisfy the entry schema. Entries
// without a schema accept anything.
func (v *JSONSchemaValidator) Validate(entry CatalogEntry, settings map[string]any) error {
	if len(entry.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(entry)
	if err != nil {
		return err
	}
	var payload map[string]any
	if settings == nil {
		payload = map[string]any{}
	} else {
		data, err := json.Marshal(settings)
		if err != nil {
			return fmt.Errorf("dashgrid: marshal settings for %s: %w", entry.Code, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("dashgrid: normalize settings for %s: %w", entry.Code, err)
		}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashgrid: settings for %s failed validation: %w", entry.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(entry CatalogEntry) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[entry.Code]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(entry.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashgrid: marshal schema %s: %w", entry.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	name := entry.Code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashgrid: load schema %s: %w", entry.Code, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashgrid: compile schema %s: %w", entry.Code, err)
	}
	v.mu.Lock()
	v.compiled[entry.Code] = compiled
	v.mu.Unlock()
	return compiled, nil
}
