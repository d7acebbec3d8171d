// Package simtypes defines the shared types and interfaces for PromptSim.
// This file contains the LLM client abstraction used by the request lifecycle.
package simtypes

import (
	"context"
	"net/http"
)

// LLMClient defines the interface for LLM provider implementations.
// A client turns one system prompt and one user query into the model's text.
// It holds no conversation state between calls.
type LLMClient interface {
	// GenerateResponse sends the system prompt and user query and returns the full response text.
	GenerateResponse(ctx context.Context, systemPrompt, userQuery string) (string, error)

	// GetProviderName returns the name of the LLM provider (e.g., "gemini", "anthropic").
	GetProviderName() string

	// IsConfigured returns true if the client has valid configuration and can make requests.
	IsConfigured() bool
}

// DebuggableClient is implemented by clients whose HTTP traffic can be captured.
type DebuggableClient interface {
	LLMClient
	SetDebugTransport(transport http.RoundTripper)
}

// ClientFactory manages the creation and caching of LLM clients.
type ClientFactory interface {
	Service

	// GetClientForProvider returns an LLM client for the specified provider.
	// Clients are cached per provider, model and API key.
	GetClientForProvider(provider, apiKey string, model *ModelConfig) (LLMClient, error)
}
