package llm

import (
	"context"
	"strings"
	"sync"
)

// MockClient is a test double for the LLM Client interface.
type MockClient struct {
	Response *Response
	Err      error
	// Respond, when set, takes precedence over Response and Err.
	Respond func(prompt string) (*Response, error)

	mu    sync.Mutex
	Calls []string // records prompts sent
}

// Complete records the call and returns the mock response.
func (m *MockClient) Complete(ctx context.Context, prompt string) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, prompt)
	m.mu.Unlock()
	if m.Respond != nil {
		return m.Respond(prompt)
	}
	return m.Response, m.Err
}

// CallCount returns the number of prompts received.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// NewDryRun returns a MockClient that answers every prompt kind with canned
// content, for running without a model.
func NewDryRun() *MockClient {
	return &MockClient{Respond: func(prompt string) (*Response, error) {
		content := "You logged the protocol. Hold the line and close the gaps this week."
		switch {
		case strings.HasPrefix(prompt, intelMarker):
			content = `[{"category":"STRATEGY","title":"Dry run","content":"No model configured. This card is canned."}]`
		case strings.HasPrefix(prompt, dailyMarker):
			content = `{"stoic":"The obstacle is the way.","tactical":"Do the hardest task first.","gratitude":"Who made today possible?"}`
		}
		return &Response{Content: content, Provider: "mock"}, nil
	}}
}
