package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptsim/internal/testutils"
	"promptsim/pkg/simtypes"
)

func TestClientFactoryService_Name(t *testing.T) {
	assert.Equal(t, "client_factory", NewClientFactoryService().Name())
}

func TestClientFactoryService_Initialize(t *testing.T) {
	service := NewClientFactoryService()

	err := service.Initialize()
	assert.NoError(t, err)
	assert.True(t, service.initialized)

	// Initialization is idempotent
	err = service.Initialize()
	assert.NoError(t, err)
	assert.True(t, service.initialized)
}

func TestClientFactoryService_GetClientForProvider(t *testing.T) {
	tests := []struct {
		name         string
		provider     string
		apiKey       string
		expectedName string
		expectError  bool
		errorMsg     string
	}{
		{name: "gemini client", provider: "gemini", apiKey: "g-key", expectedName: "gemini"},
		{name: "anthropic client", provider: "anthropic", apiKey: "a-key", expectedName: "anthropic"},
		{name: "openai client", provider: "openai", apiKey: "sk-key", expectedName: "openai"},
		{name: "empty provider", provider: "", apiKey: "key", expectError: true, errorMsg: "provider cannot be empty"},
		{name: "empty api key", provider: "gemini", apiKey: "", expectError: true, errorMsg: "API key cannot be empty for provider 'gemini'"},
		{name: "unsupported provider", provider: "cohere", apiKey: "key", expectError: true, errorMsg: "unsupported provider 'cohere'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewClientFactoryService()
			require.NoError(t, service.Initialize())

			client, err := service.GetClientForProvider(tt.provider, tt.apiKey, nil)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, client)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, client.GetProviderName())
			assert.True(t, client.IsConfigured())
		})
	}
}

func TestClientFactoryService_NotInitialized(t *testing.T) {
	service := NewClientFactoryService()

	_, err := service.GetClientForProvider("gemini", "key", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestClientFactoryService_Caching(t *testing.T) {
	service := NewClientFactoryService()
	require.NoError(t, service.Initialize())

	model := &simtypes.ModelConfig{Provider: "gemini", BaseModel: "gemini-2.5-flash"}
	first, err := service.GetClientForProvider("gemini", "key-1", model)
	require.NoError(t, err)
	second, err := service.GetClientForProvider("gemini", "key-1", model)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, service.GetCachedClientCount())

	_, err = service.GetClientForProvider("gemini", "key-2", model)
	require.NoError(t, err)
	_, err = service.GetClientForProvider("gemini", "key-1", &simtypes.ModelConfig{BaseModel: "gemini-2.5-pro"})
	require.NoError(t, err)
	assert.Equal(t, 3, service.GetCachedClientCount())

	service.ClearCache()
	assert.Equal(t, 0, service.GetCachedClientCount())
}

func TestClientFactoryService_DebugTransport(t *testing.T) {
	service := NewClientFactoryService()
	require.NoError(t, service.Initialize())

	transport := testutils.NewRecordingTransport(200, "{}")
	service.SetDebugTransport(transport)

	client, err := service.GetClientForProvider("openai", "sk-key", nil)
	require.NoError(t, err)

	openAIClient, ok := client.(*OpenAIClient)
	require.True(t, ok)
	assert.Same(t, transport, openAIClient.debugTransport)
}
