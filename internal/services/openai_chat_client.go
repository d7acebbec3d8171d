package services

import (
	"context"
	"fmt"
	"net/http"

	"promptsim/internal/logger"
	"promptsim/pkg/simtypes"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements the LLMClient interface for OpenAI chat completions.
// A model BaseURL points it at any OpenAI-compatible server.
type OpenAIClient struct {
	apiKey         string
	model          *simtypes.ModelConfig
	client         *openai.Client
	debugTransport http.RoundTripper
}

// NewOpenAIClient creates a new OpenAI client with lazy initialization.
func NewOpenAIClient(apiKey string, model *simtypes.ModelConfig) *OpenAIClient {
	return &OpenAIClient{
		apiKey: apiKey,
		model:  model,
		client: nil, // Will be initialized lazily
	}
}

// GetProviderName returns the provider name for this client.
func (c *OpenAIClient) GetProviderName() string {
	return "openai"
}

// IsConfigured returns true if the client has a valid API key.
func (c *OpenAIClient) IsConfigured() bool {
	return c.apiKey != ""
}

// SetDebugTransport sets the HTTP transport for network debugging.
func (c *OpenAIClient) SetDebugTransport(transport http.RoundTripper) {
	c.debugTransport = transport
	c.client = nil
}

// initializeClientIfNeeded initializes the OpenAI client if it hasn't been initialized yet.
func (c *OpenAIClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil
	}

	if c.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	options := []option.RequestOption{option.WithAPIKey(c.apiKey)}
	if c.model != nil && c.model.BaseURL != "" {
		options = append(options, option.WithBaseURL(c.model.BaseURL))
	}

	if c.debugTransport != nil {
		options = append(options, option.WithHTTPClient(&http.Client{Transport: c.debugTransport}))
		logger.Debug("OpenAI client initialized with debug transport", "provider", "openai")
	} else {
		logger.Debug("OpenAI client initialized", "provider", "openai")
	}

	client := openai.NewClient(options...)
	c.client = &client

	return nil
}

// GenerateResponse sends the system prompt and user query to OpenAI.
func (c *OpenAIClient) GenerateResponse(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	modelName := c.modelName()
	logger.Debug("OpenAI GenerateResponse starting", "model", modelName)

	if err := c.initializeClientIfNeeded(); err != nil {
		return "", fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	params := c.buildParams(modelName, systemPrompt, userQuery)

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("OpenAI request failed", "error", err)
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		logger.Error("No response choices returned")
		return "", fmt.Errorf("no response choices returned")
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		logger.Error("Empty response content")
		return "", fmt.Errorf("empty response content")
	}

	logger.Debug("OpenAI response received", "content_length", len(content))
	return content, nil
}

func (c *OpenAIClient) modelName() string {
	if c.model != nil && c.model.BaseModel != "" {
		return c.model.BaseModel
	}
	return "gpt-4o-mini"
}

// buildParams creates chat completion parameters: an optional system message followed by the user query.
func (c *OpenAIClient) buildParams(modelName, systemPrompt, userQuery string) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userQuery))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelName),
		Messages: messages,
	}

	if temp, ok := c.model.Float("temperature"); ok {
		params.Temperature = openai.Float(temp)
	}
	if maxTokens, ok := c.model.Int("max_tokens"); ok {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}
	if topP, ok := c.model.Float("top_p"); ok {
		params.TopP = openai.Float(topP)
	}

	return params
}
