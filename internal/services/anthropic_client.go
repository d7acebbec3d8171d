package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"promptsim/internal/logger"
	"promptsim/pkg/simtypes"
)

// defaultAnthropicMaxTokens is sent when no max_tokens parameter is configured;
// the Messages API requires the field.
const defaultAnthropicMaxTokens = 1024

// AnthropicClient implements the LLMClient interface for Anthropic's API.
// The SDK client is created lazily on the first request.
type AnthropicClient struct {
	apiKey         string
	model          *simtypes.ModelConfig
	client         *anthropic.Client
	debugTransport http.RoundTripper
}

// NewAnthropicClient creates a new Anthropic client with lazy initialization.
func NewAnthropicClient(apiKey string, model *simtypes.ModelConfig) *AnthropicClient {
	return &AnthropicClient{
		apiKey: apiKey,
		model:  model,
		client: nil, // Will be initialized lazily
	}
}

// GetProviderName returns the provider name for this client.
func (c *AnthropicClient) GetProviderName() string {
	return "anthropic"
}

// IsConfigured returns true if the client has a valid API key.
func (c *AnthropicClient) IsConfigured() bool {
	return c.apiKey != ""
}

// SetDebugTransport sets the HTTP transport for network debugging.
func (c *AnthropicClient) SetDebugTransport(transport http.RoundTripper) {
	c.debugTransport = transport
	c.client = nil
}

// initializeClientIfNeeded initializes the Anthropic client if it hasn't been initialized yet.
func (c *AnthropicClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil
	}

	if c.apiKey == "" {
		return fmt.Errorf("anthropic API key not configured")
	}

	options := []option.RequestOption{option.WithAPIKey(c.apiKey)}
	if c.debugTransport != nil {
		options = append(options, option.WithHTTPClient(&http.Client{Transport: c.debugTransport}))
	}

	client := anthropic.NewClient(options...)
	c.client = &client

	logger.Debug("Anthropic client initialized", "provider", "anthropic")
	return nil
}

// GenerateResponse sends the system prompt and user query to Anthropic.
func (c *AnthropicClient) GenerateResponse(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	modelName := c.modelName()
	logger.Debug("Anthropic GenerateResponse starting", "model", modelName)

	if err := c.initializeClientIfNeeded(); err != nil {
		return "", fmt.Errorf("failed to initialize Anthropic client: %w", err)
	}

	params := c.buildParams(modelName, systemPrompt, userQuery)

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		logger.Error("Anthropic request failed", "error", err)
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	if len(message.Content) == 0 {
		logger.Error("No response content returned")
		return "", fmt.Errorf("no response content returned")
	}

	var content strings.Builder
	for _, block := range message.Content {
		content.WriteString(block.Text)
	}

	if content.Len() == 0 {
		logger.Error("Empty response content")
		return "", fmt.Errorf("empty response content")
	}

	logger.Debug("Anthropic response received", "content_length", content.Len())
	return content.String(), nil
}

func (c *AnthropicClient) modelName() string {
	if c.model != nil && c.model.BaseModel != "" {
		return c.model.BaseModel
	}
	return "claude-sonnet-4-20250514"
}

// buildParams creates the Messages API parameters for one system prompt and one user turn.
func (c *AnthropicClient) buildParams(modelName, systemPrompt, userQuery string) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelName),
		MaxTokens: defaultAnthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userQuery)),
		},
	}

	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	if temp, ok := c.model.Float("temperature"); ok {
		params.Temperature = anthropic.Float(temp)
	}
	if maxTokens, ok := c.model.Int("max_tokens"); ok {
		params.MaxTokens = int64(maxTokens)
	}
	if topP, ok := c.model.Float("top_p"); ok {
		params.TopP = anthropic.Float(topP)
	}
	if topK, ok := c.model.Int("top_k"); ok {
		params.TopK = anthropic.Int(int64(topK))
	}

	return params
}
