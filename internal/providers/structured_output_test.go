package providers

import (
	"encoding/json"
	"testing"
)

func TestParseStructuredJSON_PlainObject(t *testing.T) {
	got, err := ParseStructuredJSON(`{"ok":true}`)
	if err != nil {
		t.Fatalf("ParseStructuredJSON() error = %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(got, &parsed); err != nil {
		t.Fatalf("failed to unmarshal parsed JSON: %v", err)
	}
	if ok, _ := parsed["ok"].(bool); !ok {
		t.Fatalf("expected ok=true, got %#v", parsed)
	}
}

func TestParseStructuredJSON_StripsCodeFence(t *testing.T) {
	content := "```json\n{\"ok\":true}\n```"
	got, err := ParseStructuredJSON(content)
	if err != nil {
		t.Fatalf("ParseStructuredJSON() error = %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal(got, &parsed); err != nil {
		t.Fatalf("failed to unmarshal parsed JSON: %v", err)
	}
	if ok, _ := parsed["ok"].(bool); !ok {
		t.Fatalf("expected ok=true, got %#v", parsed)
	}
}

func TestParseStructuredJSON_ExtractsFromProse(t *testing.T) {
	content := `Here are the results you asked for: {"recommendations":[]} hope that helps!`
	got, err := ParseStructuredJSON(content)
	if err != nil {
		t.Fatalf("ParseStructuredJSON() error = %v", err)
	}
	if string(got) != `{"recommendations":[]}` {
		t.Fatalf("got %s, want the embedded object", string(got))
	}
}

func TestParseStructuredJSON_Errors(t *testing.T) {
	for _, content := range []string{"", "   ", "not json at all"} {
		if _, err := ParseStructuredJSON(content); err == nil {
			t.Errorf("ParseStructuredJSON(%q) error = nil, want error", content)
		}
	}
}

func TestValidateStructuredJSON(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"required": ["name"]
	}`)

	if err := ValidateStructuredJSON(schema, json.RawMessage(`{"name":"x"}`)); err != nil {
		t.Errorf("ValidateStructuredJSON() error = %v, want nil", err)
	}
	if err := ValidateStructuredJSON(schema, json.RawMessage(`{"name":42}`)); err == nil {
		t.Error("ValidateStructuredJSON() error = nil, want type mismatch error")
	}
	if err := ValidateStructuredJSON(schema, json.RawMessage(`{}`)); err == nil {
		t.Error("ValidateStructuredJSON() error = nil, want missing-field error")
	}
}
