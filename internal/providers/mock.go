package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is a Client for testing collaborator paths without the
// network.
type MockClient struct {
	Latency      time.Duration
	ShouldFail   bool
	FailAfter    int // fail after N requests (0 = never)
	ResponseText string
	ResponseJSON json.RawMessage

	// ResponseFunc, when set, overrides the canned response and is
	// called with the request.
	ResponseFunc func(req *ChatRequest) (string, error)

	requestCount atomic.Int64
}

// NewMockClient creates a mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		Latency:      time.Millisecond,
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string { return MockClientName }

// RequestCount returns how many Chat calls were made.
func (c *MockClient) RequestCount() int64 { return c.requestCount.Load() }

// Chat returns the configured canned response.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	count := c.requestCount.Add(1)

	if c.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Latency):
		}
	}

	if c.ShouldFail || (c.FailAfter > 0 && count > int64(c.FailAfter)) {
		return nil, fmt.Errorf("mock client failure (request %d)", count)
	}

	if c.ResponseFunc != nil {
		content, err := c.ResponseFunc(req)
		if err != nil {
			return nil, err
		}
		return c.result(req, content)
	}

	content := c.ResponseText
	if len(c.ResponseJSON) > 0 {
		content = string(c.ResponseJSON)
	}
	return c.result(req, content)
}

func (c *MockClient) result(req *ChatRequest, content string) (*ChatResult, error) {
	result := &ChatResult{
		Content:   content,
		Provider:  MockClientName,
		ModelUsed: "mock-model",
		RequestID: req.RequestID,
		Attempts:  1,
	}
	if req.ResponseFormat != nil {
		parsed, err := ParseStructuredJSON(content)
		if err != nil {
			return result, fmt.Errorf("%w: %v", ErrStructuredOutput, err)
		}
		if len(req.ResponseFormat.JSONSchema) > 0 {
			if err := ValidateStructuredJSON(req.ResponseFormat.JSONSchema, parsed); err != nil {
				return result, fmt.Errorf("%w: %v", ErrStructuredOutput, err)
			}
		}
		result.ParsedJSON = parsed
	}
	return result, nil
}
