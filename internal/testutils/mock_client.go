// Package testutils provides fakes and deterministic helpers for PromptSim tests.
package testutils

import (
	"context"
	"sync"
)

// Call records the arguments of one GenerateResponse invocation.
type Call struct {
	SystemPrompt string
	UserQuery    string
}

// MockLLMClient is a scriptable simtypes.LLMClient.
// When Gate is set, GenerateResponse signals Started and blocks until Gate is
// closed or receives a value, which lets tests observe a request in flight.
type MockLLMClient struct {
	mu         sync.Mutex
	Response   string
	Err        error
	PanicValue interface{}
	Configured bool
	Gate       chan struct{}
	Started    chan Call
	calls      []Call
}

// NewMockLLMClient creates a configured mock that answers with response.
func NewMockLLMClient(response string) *MockLLMClient {
	return &MockLLMClient{
		Response:   response,
		Configured: true,
	}
}

// NewFailingLLMClient creates a configured mock that fails with err.
func NewFailingLLMClient(err error) *MockLLMClient {
	return &MockLLMClient{
		Err:        err,
		Configured: true,
	}
}

// NewGatedLLMClient creates a mock whose calls block until the returned gate is released.
func NewGatedLLMClient(response string) *MockLLMClient {
	return &MockLLMClient{
		Response:   response,
		Configured: true,
		Gate:       make(chan struct{}),
		Started:    make(chan Call, 8),
	}
}

// GenerateResponse records the call and returns the scripted outcome.
func (m *MockLLMClient) GenerateResponse(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	call := Call{SystemPrompt: systemPrompt, UserQuery: userQuery}

	m.mu.Lock()
	m.calls = append(m.calls, call)
	gate, started := m.Gate, m.Started
	m.mu.Unlock()

	if started != nil {
		started <- call
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PanicValue != nil {
		panic(m.PanicValue)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// GetProviderName returns "mock".
func (m *MockLLMClient) GetProviderName() string {
	return "mock"
}

// IsConfigured returns the Configured flag.
func (m *MockLLMClient) IsConfigured() bool {
	return m.Configured
}

// Calls returns a copy of the recorded calls.
func (m *MockLLMClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times GenerateResponse was invoked.
func (m *MockLLMClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Release lets one blocked call proceed.
func (m *MockLLMClient) Release() {
	m.Gate <- struct{}{}
}

// SetResponse changes the scripted outcome for subsequent calls.
func (m *MockLLMClient) SetResponse(response string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Response = response
	m.Err = err
}
