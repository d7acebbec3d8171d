package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"promptsim/internal/logger"
	"promptsim/pkg/simtypes"

	"google.golang.org/genai"
)

// GeminiClient implements the LLMClient interface for the Google Gemini API.
// The underlying genai client is created lazily on the first request.
type GeminiClient struct {
	apiKey         string
	model          *simtypes.ModelConfig
	client         *genai.Client
	debugTransport http.RoundTripper
}

// NewGeminiClient creates a new Gemini client with lazy initialization.
func NewGeminiClient(apiKey string, model *simtypes.ModelConfig) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		model:  model,
		client: nil, // Will be initialized lazily
	}
}

// GetProviderName returns the provider name for this client.
func (c *GeminiClient) GetProviderName() string {
	return "gemini"
}

// IsConfigured returns true if the client has a valid API key.
func (c *GeminiClient) IsConfigured() bool {
	return c.apiKey != ""
}

// SetDebugTransport sets the HTTP transport for network debugging.
func (c *GeminiClient) SetDebugTransport(transport http.RoundTripper) {
	c.debugTransport = transport
	// Force re-initialization with the debug transport
	c.client = nil
}

// initializeClientIfNeeded initializes the Gemini client if it hasn't been initialized yet.
func (c *GeminiClient) initializeClientIfNeeded(ctx context.Context) error {
	if c.client != nil {
		return nil
	}

	if c.apiKey == "" {
		return fmt.Errorf("google API key not configured")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	if c.debugTransport != nil {
		clientConfig.HTTPClient = &http.Client{Transport: c.debugTransport}
		logger.Debug("Gemini client initialized with debug transport", "provider", "gemini")
	} else {
		logger.Debug("Gemini client initialized", "provider", "gemini")
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c.client = client
	return nil
}

// GenerateResponse sends the system prompt and user query to Gemini.
// The system prompt travels as SystemInstruction, the query as the single user turn.
func (c *GeminiClient) GenerateResponse(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	modelName := c.modelName()
	logger.Debug("Gemini GenerateResponse starting", "model", modelName)

	if err := c.initializeClientIfNeeded(ctx); err != nil {
		return "", fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	contents := []*genai.Content{genai.NewContentFromText(userQuery, genai.RoleUser)}
	config := c.buildGenerationConfig(systemPrompt)

	result, err := c.client.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		logger.Error("Gemini request failed", "error", err)
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	content, textBlocks := extractGeminiText(result)
	if content == "" {
		logger.Error("Empty response content")
		return "", fmt.Errorf("empty response content")
	}

	logger.Debug("Gemini response received", "content_length", len(content), "text_blocks", textBlocks)
	return content, nil
}

func (c *GeminiClient) modelName() string {
	if c.model != nil && c.model.BaseModel != "" {
		return c.model.BaseModel
	}
	return "gemini-2.5-flash"
}

// buildGenerationConfig creates a Gemini generation config from the system prompt and model parameters.
func (c *GeminiClient) buildGenerationConfig(systemPrompt string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	if temp, ok := c.model.Float("temperature"); ok {
		temp32 := float32(temp)
		config.Temperature = &temp32
	}
	if maxTokens, ok := c.model.Int("max_tokens"); ok {
		config.MaxOutputTokens = int32(maxTokens)
	}
	if topP, ok := c.model.Float("top_p"); ok {
		topP32 := float32(topP)
		config.TopP = &topP32
	}
	if topK, ok := c.model.Int("top_k"); ok {
		topK32 := float32(topK)
		config.TopK = &topK32
	}

	return config
}

// extractGeminiText concatenates the text parts of all candidates, skipping thought parts.
func extractGeminiText(result *genai.GenerateContentResponse) (string, int) {
	if result == nil {
		return "", 0
	}

	var contentBuilder strings.Builder
	textBlocks := 0
	for _, candidate := range result.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" || part.Thought {
				continue
			}
			textBlocks++
			contentBuilder.WriteString(part.Text)
		}
	}
	return contentBuilder.String(), textBlocks
}
