package services

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptsim/internal/output"
	"promptsim/pkg/simtypes"
)

func TestThemeService_Name(t *testing.T) {
	assert.Equal(t, "theme", NewThemeService().Name())
}

func TestThemeService_AvailableThemes(t *testing.T) {
	service := NewThemeService()
	require.NoError(t, service.Initialize())

	assert.Equal(t, []string{"dark", "default", "light", "plain"}, service.GetAvailableThemes())
}

func TestThemeService_GetThemeByName(t *testing.T) {
	service := NewThemeService()
	require.NoError(t, service.Initialize())

	tests := []struct {
		input    string
		expected string
	}{
		{input: "default", expected: "default"},
		{input: "", expected: "default"},
		{input: "  DARK ", expected: "dark"},
		{input: "light", expected: "light"},
		{input: "plain", expected: "plain"},
		{input: "neon", expected: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			theme := service.GetThemeByName(tt.input)
			require.NotNil(t, theme)
			assert.Equal(t, tt.expected, theme.Name)
			assert.NotEmpty(t, theme.GlamourStyle)
		})
	}
}

func TestThemeService_PlainThemeUsesNoColor(t *testing.T) {
	service := NewThemeService()
	theme := service.GetThemeByName("plain")

	assert.Equal(t, "notty", theme.GlamourStyle)
	assert.Equal(t, "Error", theme.Error.Render("Error"))
}

func TestCreateStyle(t *testing.T) {
	bold := true

	plain := createStyle(simtypes.StyleConfig{Foreground: "196", Bold: &bold})
	assert.Equal(t, lipgloss.Color("196"), plain.GetForeground())
	assert.True(t, plain.GetBold())
	assert.False(t, plain.GetBorderTop())

	bordered := createStyle(simtypes.StyleConfig{Foreground: "99", Border: "rounded"})
	assert.True(t, bordered.GetBorderTop())
	assert.Equal(t, lipgloss.Color("99"), bordered.GetBorderTopForeground())
	assert.Equal(t, lipgloss.NoColor{}, bordered.GetForeground())
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#ff0000"), parseColor("#ff0000"))
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "0", Dark: "15"},
		parseColor(map[string]interface{}{"light": "0", "dark": "15"}))
	assert.Nil(t, parseColor(map[string]interface{}{"light": "0"}))
	assert.Nil(t, parseColor(42))
}

func TestLoadThemeFile_Invalid(t *testing.T) {
	service := NewThemeService()
	_, err := service.loadThemeFile([]byte("styles: [not a map"))
	assert.Error(t, err)
}

func TestTheme_StyleProvider(t *testing.T) {
	var provider output.StyleProvider = PlainTheme("plain")
	assert.True(t, provider.IsAvailable())
	assert.Equal(t, "Error", provider.GetStyle("error").Render("Error"))
	assert.Equal(t, "text", provider.GetStyle("response").Render("text"))
	assert.Equal(t, "text", provider.GetStyle("unknown").Render("text"))

	var missing *Theme
	assert.False(t, missing.IsAvailable())
}
