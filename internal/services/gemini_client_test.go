package services

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"promptsim/internal/testutils"
	"promptsim/pkg/simtypes"
)

// setupTestEnvironment loads .env file and returns API key if available
func setupTestEnvironment(t *testing.T, envVar string) string {
	// Try to load .env file from project root (two levels up from internal/services)
	_ = godotenv.Load("../../.env")

	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		t.Skipf("%s not set - skipping real API tests", envVar)
	}
	return apiKey
}

const geminiOKBody = `{"candidates":[{"content":{"parts":[{"text":"4"}],"role":"model"},"finishReason":"STOP"}]}`

func TestNewGeminiClient(t *testing.T) {
	client := NewGeminiClient("test-api-key", nil)

	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, (*genai.Client)(nil), client.client, "client is created lazily")
	assert.Equal(t, "gemini", client.GetProviderName())
	assert.Equal(t, "gemini-2.5-flash", client.modelName())
}

func TestGeminiClient_IsConfigured(t *testing.T) {
	assert.True(t, NewGeminiClient("key", nil).IsConfigured())
	assert.False(t, NewGeminiClient("", nil).IsConfigured())
}

func TestGeminiClient_GenerateResponse_NoAPIKey(t *testing.T) {
	client := NewGeminiClient("", nil)

	_, err := client.GenerateResponse(context.Background(), "sys", "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google API key not configured")
}

func TestGeminiClient_GenerateResponse_FakeTransport(t *testing.T) {
	transport := testutils.NewRecordingTransport(http.StatusOK, geminiOKBody)
	client := NewGeminiClient("test-api-key", &simtypes.ModelConfig{BaseModel: "gemini-2.5-flash"})
	client.SetDebugTransport(transport)

	text, err := client.GenerateResponse(context.Background(), "You are helpful.", "2+2?")
	require.NoError(t, err)
	assert.Equal(t, "4", text)

	require.Equal(t, 1, transport.RequestCount())
	body := transport.LastBody()
	assert.Contains(t, body, "You are helpful.")
	assert.Contains(t, body, "2+2?")
	assert.Contains(t, transport.Requests[0].URL.Path, "gemini-2.5-flash")
}

func TestGeminiClient_GenerateResponse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		errorMsg string
	}{
		{
			name:     "api error",
			status:   http.StatusBadRequest,
			body:     `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
			errorMsg: "gemini request failed",
		},
		{
			name:     "no text parts",
			status:   http.StatusOK,
			body:     `{"candidates":[{"content":{"parts":[],"role":"model"}}]}`,
			errorMsg: "empty response content",
		},
		{
			name:     "only thought parts",
			status:   http.StatusOK,
			body:     `{"candidates":[{"content":{"parts":[{"text":"thinking","thought":true}],"role":"model"}}]}`,
			errorMsg: "empty response content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewGeminiClient("test-api-key", nil)
			client.SetDebugTransport(testutils.NewRecordingTransport(tt.status, tt.body))

			text, err := client.GenerateResponse(context.Background(), "", "query")
			require.Error(t, err)
			assert.Empty(t, text)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestGeminiClient_BuildGenerationConfig(t *testing.T) {
	client := NewGeminiClient("key", &simtypes.ModelConfig{
		Parameters: map[string]any{
			"temperature": 0.5,
			"max_tokens":  256,
			"top_p":       0.9,
			"top_k":       40,
		},
	})

	config := client.buildGenerationConfig("be brief")
	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Equal(t, "be brief", config.SystemInstruction.Parts[0].Text)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.5, *config.Temperature, 0.0001)
	assert.Equal(t, int32(256), config.MaxOutputTokens)
	require.NotNil(t, config.TopP)
	require.NotNil(t, config.TopK)
	assert.InDelta(t, 40, *config.TopK, 0.0001)

	empty := NewGeminiClient("key", nil).buildGenerationConfig("")
	assert.Nil(t, empty.SystemInstruction)
	assert.Nil(t, empty.Temperature)
	assert.Zero(t, empty.MaxOutputTokens)
}

func TestExtractGeminiText(t *testing.T) {
	text, blocks := extractGeminiText(nil)
	assert.Empty(t, text)
	assert.Zero(t, blocks)

	result := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "plan", Thought: true},
				{Text: "Hello, "},
				nil,
				{Text: "world"},
			}}},
			nil,
		},
	}
	text, blocks = extractGeminiText(result)
	assert.Equal(t, "Hello, world", text)
	assert.Equal(t, 2, blocks)
}

func TestGeminiClient_RealAPI(t *testing.T) {
	apiKey := setupTestEnvironment(t, "GEMINI_API_KEY")

	client := NewGeminiClient(apiKey, &simtypes.ModelConfig{BaseModel: "gemini-2.5-flash"})
	text, err := client.GenerateResponse(context.Background(), "Answer with a single number.", "What is 2+2?")
	require.NoError(t, err)
	assert.Contains(t, text, "4")
}
