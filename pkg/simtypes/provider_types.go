// Package simtypes defines provider-related data structures for PromptSim's provider catalog.
package simtypes

// ProviderCatalogEntry represents one supported provider and its known models.
type ProviderCatalogEntry struct {
	// ID is the provider identifier used on the command line (e.g., "gemini")
	// Must be unique across all provider entries (case-insensitive)
	ID string `yaml:"id" json:"id"`

	// DisplayName is a human-readable name for the provider
	DisplayName string `yaml:"display_name" json:"display_name"`

	// BaseURL is the API base URL for this provider
	BaseURL string `yaml:"base_url" json:"base_url"`

	// ClientType indicates which client implementation to use
	// Supported types: "gemini", "anthropic", "openai"
	ClientType string `yaml:"client_type" json:"client_type"`

	// APIKeyEnv lists environment variable names checked for the API key, in order
	APIKeyEnv []string `yaml:"api_key_env" json:"api_key_env"`

	// DefaultModel is used when no model is configured for this provider
	DefaultModel string `yaml:"default_model" json:"default_model"`

	// Models lists the model identifiers known to work with this provider
	Models []string `yaml:"models" json:"models"`

	// Description provides a brief description of the provider
	Description string `yaml:"description" json:"description"`
}

// HasModel reports whether model is listed in the catalog entry.
func (p ProviderCatalogEntry) HasModel(model string) bool {
	for _, m := range p.Models {
		if m == model {
			return true
		}
	}
	return false
}
