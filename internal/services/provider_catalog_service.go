package services

import (
	"fmt"
	"sort"
	"strings"

	"promptsim/internal/data/embedded"
	"promptsim/pkg/simtypes"

	"gopkg.in/yaml.v3"
)

// ProviderCatalogService loads the embedded YAML provider catalogs
// and answers provider and model lookups.
type ProviderCatalogService struct {
	initialized bool
	providers   []simtypes.ProviderCatalogEntry
}

// NewProviderCatalogService creates a new ProviderCatalogService instance.
func NewProviderCatalogService() *ProviderCatalogService {
	return &ProviderCatalogService{
		initialized: false,
	}
}

// Name returns the service name "provider_catalog" for registration.
func (p *ProviderCatalogService) Name() string {
	return "provider_catalog"
}

// Initialize loads and validates the embedded catalogs.
func (p *ProviderCatalogService) Initialize() error {
	providers, err := LoadProviderCatalog(embedded.ProviderFiles())
	if err != nil {
		return err
	}
	p.providers = providers
	p.initialized = true
	return nil
}

// LoadProviderCatalog parses catalog files and checks that provider IDs are unique.
// The result is sorted by provider ID.
func LoadProviderCatalog(files map[string][]byte) ([]simtypes.ProviderCatalogEntry, error) {
	providers := make([]simtypes.ProviderCatalogEntry, 0, len(files))
	for name, data := range files {
		var entry simtypes.ProviderCatalogEntry
		if err := yaml.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse provider catalog %s: %w", name, err)
		}
		providers = append(providers, entry)
	}

	if err := validateUniqueIDs(providers); err != nil {
		return nil, fmt.Errorf("provider catalog validation failed: %w", err)
	}

	sort.Slice(providers, func(i, j int) bool { return providers[i].ID < providers[j].ID })
	return providers, nil
}

// GetProviderCatalog returns every catalog entry.
func (p *ProviderCatalogService) GetProviderCatalog() ([]simtypes.ProviderCatalogEntry, error) {
	if !p.initialized {
		return nil, fmt.Errorf("provider catalog service not initialized")
	}
	out := make([]simtypes.ProviderCatalogEntry, len(p.providers))
	copy(out, p.providers)
	return out, nil
}

// GetProviderByID returns a provider by its ID (case-insensitive lookup).
func (p *ProviderCatalogService) GetProviderByID(id string) (simtypes.ProviderCatalogEntry, error) {
	if !p.initialized {
		return simtypes.ProviderCatalogEntry{}, fmt.Errorf("provider catalog service not initialized")
	}

	normalizedID := normalizeID(id)
	for _, provider := range p.providers {
		if normalizeID(provider.ID) == normalizedID {
			return provider, nil
		}
	}

	return simtypes.ProviderCatalogEntry{}, fmt.Errorf("provider with ID '%s' not found in catalog", id)
}

// ValidateModel reports whether model is usable with provider. Models missing
// from the catalog are allowed for OpenAI-compatible endpoints because the
// server decides which models exist.
func (p *ProviderCatalogService) ValidateModel(provider, model string, customBaseURL bool) error {
	entry, err := p.GetProviderByID(provider)
	if err != nil {
		return err
	}
	if model == "" || entry.HasModel(model) {
		return nil
	}
	if entry.ClientType == "openai" && customBaseURL {
		return nil
	}
	return fmt.Errorf("model '%s' is not in the %s catalog. Known models: %s", model, entry.ID, strings.Join(entry.Models, ", "))
}

// validateUniqueIDs checks for empty or duplicate provider IDs (case-insensitive).
func validateUniqueIDs(providers []simtypes.ProviderCatalogEntry) error {
	seenIDs := make(map[string]string)

	for _, provider := range providers {
		if provider.ID == "" {
			return fmt.Errorf("provider '%s' has empty ID field", provider.DisplayName)
		}

		normalizedID := normalizeID(provider.ID)
		if existingID, exists := seenIDs[normalizedID]; exists {
			return fmt.Errorf("duplicate provider ID '%s' (conflicts with '%s')", provider.ID, existingID)
		}
		seenIDs[normalizedID] = provider.ID
	}

	return nil
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
