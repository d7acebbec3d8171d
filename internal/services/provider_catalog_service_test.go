package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderCatalogService_Name(t *testing.T) {
	assert.Equal(t, "provider_catalog", NewProviderCatalogService().Name())
}

func TestProviderCatalogService_NotInitialized(t *testing.T) {
	service := NewProviderCatalogService()

	_, err := service.GetProviderCatalog()
	assert.Error(t, err)
	_, err = service.GetProviderByID("gemini")
	assert.Error(t, err)
}

func TestProviderCatalogService_EmbeddedCatalog(t *testing.T) {
	service := NewProviderCatalogService()
	require.NoError(t, service.Initialize())

	providers, err := service.GetProviderCatalog()
	require.NoError(t, err)
	require.Len(t, providers, 3)

	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
		assert.NotEmpty(t, p.DisplayName, p.ID)
		assert.NotEmpty(t, p.APIKeyEnv, p.ID)
		assert.True(t, p.HasModel(p.DefaultModel), "%s default model must be listed", p.ID)
	}
	assert.Equal(t, []string{"anthropic", "gemini", "openai"}, ids)

	gemini, err := service.GetProviderByID("  GEMINI ")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", gemini.DefaultModel)
	assert.Equal(t, "gemini", gemini.ClientType)

	_, err = service.GetProviderByID("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in catalog")
}

func TestProviderCatalogService_ValidateModel(t *testing.T) {
	service := NewProviderCatalogService()
	require.NoError(t, service.Initialize())

	tests := []struct {
		name          string
		provider      string
		model         string
		customBaseURL bool
		expectError   bool
	}{
		{name: "known model", provider: "gemini", model: "gemini-2.5-pro"},
		{name: "empty model uses default", provider: "anthropic", model: ""},
		{name: "unknown model", provider: "gemini", model: "made-up", expectError: true},
		{name: "unknown model on custom openai endpoint", provider: "openai", model: "llama3", customBaseURL: true},
		{name: "custom base url does not relax other providers", provider: "anthropic", model: "llama3", customBaseURL: true, expectError: true},
		{name: "unknown provider", provider: "nope", model: "x", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidateModel(tt.provider, tt.model, tt.customBaseURL)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadProviderCatalog(t *testing.T) {
	t.Run("duplicate ids", func(t *testing.T) {
		_, err := LoadProviderCatalog(map[string][]byte{
			"a.yaml": []byte("id: demo\ndisplay_name: A\n"),
			"b.yaml": []byte("id: DEMO\ndisplay_name: B\n"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate provider ID")
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := LoadProviderCatalog(map[string][]byte{
			"a.yaml": []byte("display_name: Nameless\n"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty ID")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadProviderCatalog(map[string][]byte{
			"bad.yaml": []byte("id: [unclosed"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.yaml")
	})

	t.Run("sorted output", func(t *testing.T) {
		providers, err := LoadProviderCatalog(map[string][]byte{
			"z.yaml": []byte("id: zeta\n"),
			"a.yaml": []byte("id: alpha\nmodels: [m1, m2]\n"),
		})
		require.NoError(t, err)
		require.Len(t, providers, 2)
		assert.Equal(t, "alpha", providers[0].ID)
		assert.Equal(t, []string{"m1", "m2"}, providers[0].Models)
	})
}
