// Package providers contains the LLM collaborator clients used by the
// text reader and the dish-ranking service: a narrow chat/vision
// interface, an OpenAI implementation, rate limiting, and structured
// output parsing with JSON-schema validation.
package providers

import (
	"context"
	"encoding/json"
	"time"
)

// Client is the chat/vision capability consumed by collaborators.
type Client interface {
	// Chat sends a chat completion request.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error)

	// Name returns the client identifier (e.g. "openai", "mock").
	Name() string
}

// Message is a single chat message. Images are raw bytes; clients
// base64-encode them for the wire.
type Message struct {
	Role    string   `json:"role"` // "system", "user", "assistant"
	Content string   `json:"content"`
	Images  [][]byte `json:"-"`
}

// ResponseFormat requests structured JSON output conforming to the
// given schema. Clients validate responses locally against it.
type ResponseFormat struct {
	Type       string          `json:"type"` // "json_schema"
	JSONSchema json.RawMessage `json:"json_schema,omitempty"`
}

// ChatRequest is a request to an LLM collaborator.
type ChatRequest struct {
	Messages []Message `json:"messages"`

	// Model overrides the client default when non-empty.
	Model string `json:"model,omitempty"`

	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`

	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`

	// RequestID tags the call for tracing; generated when empty.
	RequestID string `json:"-"`
}

// ChatResult is the response from an LLM collaborator call.
type ChatResult struct {
	Content    string          `json:"content"`
	ParsedJSON json.RawMessage `json:"parsed_json,omitempty"` // set when ResponseFormat was requested

	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	Provider  string        `json:"provider"`
	ModelUsed string        `json:"model_used"`
	RequestID string        `json:"request_id"`
	Attempts  int           `json:"attempts"`
	TotalTime time.Duration `json:"total_time"`
}
