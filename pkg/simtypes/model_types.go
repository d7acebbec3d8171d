// Package simtypes defines model-related data structures for PromptSim.
// This file contains the types describing which model a request is sent to.
package simtypes

// ModelConfig represents the model a client sends requests to.
type ModelConfig struct {
	// Provider is the API provider name (e.g., "gemini", "openai", "anthropic")
	Provider string `json:"provider" yaml:"provider"`

	// BaseModel is the provider's model identifier (e.g., "gemini-2.5-flash", "gpt-4o")
	BaseModel string `json:"base_model" yaml:"base_model"`

	// BaseURL overrides the provider endpoint; used for OpenAI-compatible servers
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Parameters contains generation parameters.
	// Recognized keys: temperature (float64), max_tokens (int), top_p (float64), top_k (int)
	Parameters map[string]any `json:"parameters" yaml:"parameters"`
}

// Float returns a float parameter and whether it was set.
func (m *ModelConfig) Float(key string) (float64, bool) {
	if m == nil || m.Parameters == nil {
		return 0, false
	}
	switch v := m.Parameters[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Int returns an integer parameter and whether it was set to a positive value.
func (m *ModelConfig) Int(key string) (int, bool) {
	if m == nil || m.Parameters == nil {
		return 0, false
	}
	switch v := m.Parameters[key].(type) {
	case int:
		return v, v > 0
	case int64:
		return int(v), v > 0
	case float64:
		return int(v), v > 0
	}
	return 0, false
}
