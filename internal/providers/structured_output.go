package providers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ParseStructuredJSON parses JSON from model output, with lightweight
// recovery for markdown code fences and surrounding prose.
func ParseStructuredJSON(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty structured output")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONCandidate(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	var lastErr error
	for _, candidate := range candidates {
		var parsed json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			lastErr = err
			continue
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("failed to parse structured output as JSON: %w", lastErr)
}

// ValidateStructuredJSON validates a parsed document against a raw JSON
// schema.
func ValidateStructuredJSON(schemaRaw, doc json.RawMessage) error {
	schema, err := jsonschema.CompileString("response_schema.json", string(schemaRaw))
	if err != nil {
		return fmt.Errorf("failed to compile response schema: %w", err)
	}

	var instance any
	if err := json.Unmarshal(doc, &instance); err != nil {
		return fmt.Errorf("failed to decode document for validation: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("structured output failed schema validation: %w", err)
	}
	return nil
}

// stripCodeFences removes a single surrounding markdown code fence,
// with or without a language tag.
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	body := strings.TrimPrefix(trimmed, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		// Drop the language tag line (e.g. "json").
		firstLine := strings.TrimSpace(body[:nl])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{[") {
			body = body[nl+1:]
		}
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}

// extractJSONCandidate pulls the outermost {...} or [...] span out of
// prose-wrapped output.
func extractJSONCandidate(content string) string {
	for _, pair := range [][2]byte{{'{', '}'}, {'[', ']'}} {
		start := strings.IndexByte(content, pair[0])
		end := strings.LastIndexByte(content, pair[1])
		if start >= 0 && end > start {
			return strings.TrimSpace(content[start : end+1])
		}
	}
	return ""
}
