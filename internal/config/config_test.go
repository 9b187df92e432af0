package config

import (
	"os"
	"path/filepath"
	"testing"

	yaml "gopkg.in/yaml.v2"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadMB != 10 {
		t.Errorf("Server.MaxUploadMB = %d, want 10", cfg.Server.MaxUploadMB)
	}
	if cfg.LLM.APIKey != "${OPENAI_API_KEY}" {
		t.Errorf("LLM.APIKey = %q, want env indirection", cfg.LLM.APIKey)
	}
	if cfg.Pipeline.Strategy != "heuristic" {
		t.Errorf("Pipeline.Strategy = %q, want heuristic", cfg.Pipeline.Strategy)
	}
	if cfg.Reader.OCRLanguage != "eng" {
		t.Errorf("Reader.OCRLanguage = %q, want eng", cfg.Reader.OCRLanguage)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("MENULENS_TEST_KEY", "secret-value")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "env reference", value: "${MENULENS_TEST_KEY}", want: "secret-value"},
		{name: "literal value", value: "sk-abc123", want: "sk-abc123"},
		{name: "unset env", value: "${MENULENS_UNSET_KEY_XYZ}", want: ""},
		{name: "not a full reference", value: "prefix-${MENULENS_TEST_KEY}", want: "prefix-${MENULENS_TEST_KEY}"},
		{name: "empty", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveEnvVars(tt.value); got != tt.want {
				t.Errorf("ResolveEnvVars(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("MENULENS_TEST_API_KEY", "sk-from-env")

	cfg := DefaultConfig()
	cfg.LLM.APIKey = "${MENULENS_TEST_API_KEY}"
	if got := cfg.ResolveAPIKey(); got != "sk-from-env" {
		t.Errorf("ResolveAPIKey() = %q, want sk-from-env", got)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid YAML: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("round-tripped Server.Port = %q, want 8080", cfg.Server.Port)
	}

	// A second write must refuse to clobber the file.
	if err := WriteDefault(path); err == nil {
		t.Error("WriteDefault() on existing file error = nil, want error")
	}
}
