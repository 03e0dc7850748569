package dashgrid

import "testing"

func chartEntry() CatalogEntry {
	return CatalogEntry{
		Code: "rental.widget.fleet_utilization",
		Name: "Fleet Utilization",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"chart_type": map[string]any{"type": "string", "enum": []string{"bar", "line"}},
				"title":      map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
	}
}

func TestJSONSchemaValidatorAccepts(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(chartEntry(), map[string]any{"chart_type": "line", "title": "Fleet"})
	if err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}
}

func TestJSONSchemaValidatorRejects(t *testing.T) {
	validator := NewJSONSchemaValidator()
	if err := validator.Validate(chartEntry(), map[string]any{"chart_type": "pie"}); err == nil {
		t.Fatalf("expected enum violation")
	}
	if err := validator.Validate(chartEntry(), map[string]any{"unexpected": true}); err == nil {
		t.Fatalf("expected additionalProperties violation")
	}
}

func TestJSONSchemaValidatorNoSchemaAcceptsAnything(t *testing.T) {
	validator := NewJSONSchemaValidator()
	entry := CatalogEntry{Code: "rental.widget.open_agreements", Name: "Open Agreements"}
	if err := validator.Validate(entry, map[string]any{"whatever": 42}); err != nil {
		t.Fatalf("schemaless entry should accept anything: %v", err)
	}
}

func TestJSONSchemaValidatorNilSettings(t *testing.T) {
	validator := NewJSONSchemaValidator()
	if err := validator.Validate(chartEntry(), nil); err != nil {
		t.Fatalf("nil settings should validate against an optional schema: %v", err)
	}
}

func TestServiceValidateSettings(t *testing.T) {
	service := NewService(Options{Gateway: newFakeGateway()})
	if err := service.ValidateSettings("rental.widget.fleet_utilization", map[string]any{"chart_type": "bar"}); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}
	if err := service.ValidateSettings("rental.widget.fleet_utilization", map[string]any{"chart_type": "donut"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := service.ValidateSettings("unknown.widget", map[string]any{"x": 1}); err != nil {
		t.Fatalf("unknown widgets skip validation: %v", err)
	}
}
