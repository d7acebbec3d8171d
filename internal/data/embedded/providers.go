package embedded

import _ "embed"

// GeminiProviderData contains the embedded Google Gemini provider catalog YAML data.
//
//go:embed providers/gemini.yaml
var GeminiProviderData []byte

// AnthropicProviderData contains the embedded Anthropic provider catalog YAML data.
//
//go:embed providers/anthropic.yaml
var AnthropicProviderData []byte

// OpenAIProviderData contains the embedded OpenAI provider catalog YAML data.
//
//go:embed providers/openai.yaml
var OpenAIProviderData []byte

// ProviderFiles returns all embedded provider catalogs keyed by file name.
func ProviderFiles() map[string][]byte {
	return map[string][]byte{
		"gemini":    GeminiProviderData,
		"anthropic": AnthropicProviderData,
		"openai":    OpenAIProviderData,
	}
}
