package services

import (
	"fmt"
	"net/http"
	"sync"

	"promptsim/internal/logger"
	"promptsim/pkg/simtypes"
)

// SupportedProviders lists the client types the factory can construct.
var SupportedProviders = []string{"gemini", "anthropic", "openai"}

// ClientFactoryService implements the ClientFactory interface.
// It manages the creation and caching of LLM clients.
type ClientFactoryService struct {
	initialized    bool
	clients        map[string]simtypes.LLMClient
	debugTransport http.RoundTripper
	mutex          sync.RWMutex
}

// NewClientFactoryService creates a new ClientFactoryService instance.
func NewClientFactoryService() *ClientFactoryService {
	return &ClientFactoryService{
		initialized: false,
		clients:     make(map[string]simtypes.LLMClient),
	}
}

// Name returns the service name "client_factory" for registration.
func (f *ClientFactoryService) Name() string {
	return "client_factory"
}

// Initialize sets up the ClientFactoryService for operation.
func (f *ClientFactoryService) Initialize() error {
	logger.ServiceOperation("client_factory", "initialize", "starting")
	f.initialized = true
	logger.ServiceOperation("client_factory", "initialize", "completed")
	return nil
}

// SetDebugTransport makes every client created afterwards route HTTP traffic through transport.
func (f *ClientFactoryService) SetDebugTransport(transport http.RoundTripper) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.debugTransport = transport
}

// GetClientForProvider returns an LLM client for the specified provider, API key and model.
func (f *ClientFactoryService) GetClientForProvider(provider, apiKey string, model *simtypes.ModelConfig) (simtypes.LLMClient, error) {
	if !f.initialized {
		return nil, fmt.Errorf("client factory service not initialized")
	}

	if provider == "" {
		return nil, fmt.Errorf("provider cannot be empty")
	}

	if apiKey == "" {
		return nil, fmt.Errorf("API key cannot be empty for provider '%s'", provider)
	}

	if model == nil {
		model = &simtypes.ModelConfig{Provider: provider}
	}
	cacheKey := fmt.Sprintf("%s:%s:%s:%s", provider, model.BaseModel, model.BaseURL, apiKey)

	f.mutex.RLock()
	if client, exists := f.clients[cacheKey]; exists {
		f.mutex.RUnlock()
		logger.Debug("Returning cached provider client", "provider", provider)
		return client, nil
	}
	f.mutex.RUnlock()

	f.mutex.Lock()
	defer f.mutex.Unlock()

	// Double-check pattern
	if client, exists := f.clients[cacheKey]; exists {
		return client, nil
	}

	var client simtypes.LLMClient
	switch provider {
	case "gemini":
		client = NewGeminiClient(apiKey, model)
	case "anthropic":
		client = NewAnthropicClient(apiKey, model)
	case "openai":
		client = NewOpenAIClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider '%s'. Supported providers: %v", provider, SupportedProviders)
	}

	if f.debugTransport != nil {
		if debuggable, ok := client.(simtypes.DebuggableClient); ok {
			debuggable.SetDebugTransport(f.debugTransport)
		}
	}

	f.clients[cacheKey] = client

	logger.Debug("Created new provider client", "provider", provider, "model", model.BaseModel)
	return client, nil
}

// GetCachedClientCount returns the number of cached clients.
func (f *ClientFactoryService) GetCachedClientCount() int {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return len(f.clients)
}

// ClearCache removes all cached clients.
func (f *ClientFactoryService) ClearCache() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.clients = make(map[string]simtypes.LLMClient)
	logger.Debug("Client cache cleared")
}
