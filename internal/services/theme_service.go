package services

import (
	"fmt"
	"sort"
	"strings"

	"promptsim/internal/data/embedded"
	"promptsim/internal/logger"
	"promptsim/internal/output"
	"promptsim/pkg/simtypes"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeService provides theme management for PromptSim styling.
// Themes are loaded from embedded YAML files and converted to lipgloss styles.
type ThemeService struct {
	initialized bool
	themes      map[string]*Theme
}

// Theme defines the styles used by the prompt form and the response renderer.
type Theme struct {
	Name           string
	GlamourStyle   string
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Label          lipgloss.Style
	FieldFocused   lipgloss.Style
	FieldBlurred   lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style
	Loading        lipgloss.Style
	Error          lipgloss.Style
	Placeholder    lipgloss.Style
	Response       lipgloss.Style
	Output         lipgloss.Style
	Hint           lipgloss.Style
}

// NewThemeService creates a new ThemeService instance with themes loaded from YAML.
func NewThemeService() *ThemeService {
	service := &ThemeService{
		initialized: false,
		themes:      make(map[string]*Theme),
	}
	service.loadThemesFromYAML()
	return service
}

// Name returns the service name "theme" for registration.
func (t *ThemeService) Name() string {
	return "theme"
}

// Initialize sets up the ThemeService for operation.
func (t *ThemeService) Initialize() error {
	t.initialized = true
	return nil
}

// loadThemesFromYAML loads themes from embedded YAML files
func (t *ThemeService) loadThemesFromYAML() {
	for themeName, themeData := range embedded.ThemeFiles() {
		theme, err := t.loadThemeFile(themeData)
		if err != nil {
			logger.Error("Failed to load theme", "theme", themeName, "error", err)
			t.themes[themeName] = PlainTheme(themeName)
			continue
		}
		if theme.Name == "" {
			theme.Name = themeName
		}
		t.themes[themeName] = theme
	}

	if _, exists := t.themes["plain"]; !exists {
		t.themes["plain"] = PlainTheme("plain")
	}
}

// loadThemeFile parses an individual theme file from YAML data.
func (t *ThemeService) loadThemeFile(data []byte) (*Theme, error) {
	var config simtypes.ThemeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	return convertThemeConfig(&config), nil
}

// convertThemeConfig converts a ThemeConfig from YAML to a Theme with lipgloss styles.
func convertThemeConfig(config *simtypes.ThemeConfig) *Theme {
	s := config.Styles
	glamourStyle := config.GlamourStyle
	if glamourStyle == "" {
		glamourStyle = "auto"
	}
	return &Theme{
		Name:           config.Name,
		GlamourStyle:   glamourStyle,
		Title:          createStyle(s.Title),
		Subtitle:       createStyle(s.Subtitle),
		Label:          createStyle(s.Label),
		FieldFocused:   createStyle(s.FieldFocused),
		FieldBlurred:   createStyle(s.FieldBlurred),
		Button:         createStyle(s.Button).Padding(0, 2),
		ButtonFocused:  createStyle(s.ButtonFocused).Padding(0, 2),
		ButtonDisabled: createStyle(s.ButtonDisabled).Padding(0, 2),
		Loading:        createStyle(s.Loading),
		Error:          createStyle(s.Error),
		Placeholder:    createStyle(s.Placeholder),
		Response:       createStyle(s.Response),
		Output:         createStyle(s.Output).Padding(0, 1),
		Hint:           createStyle(s.Hint),
	}
}

// createStyle converts a StyleConfig to a lipgloss.Style.
// Colors on bordered styles apply to the border rather than the text.
func createStyle(config simtypes.StyleConfig) lipgloss.Style {
	style := lipgloss.NewStyle()

	border, hasBorder := parseBorder(config.Border)
	if hasBorder {
		style = style.Border(border)
	}

	if config.Foreground != nil {
		if color := parseColor(config.Foreground); color != nil {
			if hasBorder {
				style = style.BorderForeground(color)
			} else {
				style = style.Foreground(color)
			}
		}
	}

	if config.Background != nil {
		if color := parseColor(config.Background); color != nil {
			style = style.Background(color)
		}
	}

	if config.Bold != nil && *config.Bold {
		style = style.Bold(true)
	}
	if config.Italic != nil && *config.Italic {
		style = style.Italic(true)
	}
	if config.Underline != nil && *config.Underline {
		style = style.Underline(true)
	}
	if config.Faint != nil && *config.Faint {
		style = style.Faint(true)
	}

	return style
}

func parseBorder(name string) (lipgloss.Border, bool) {
	switch strings.ToLower(name) {
	case "rounded":
		return lipgloss.RoundedBorder(), true
	case "normal":
		return lipgloss.NormalBorder(), true
	case "thick":
		return lipgloss.ThickBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}

// parseColor parses a color value that can be a string or a {light, dark} map.
func parseColor(colorValue interface{}) lipgloss.TerminalColor {
	switch v := colorValue.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]interface{}:
		if light, hasLight := v["light"].(string); hasLight {
			if dark, hasDark := v["dark"].(string); hasDark {
				return lipgloss.AdaptiveColor{Light: light, Dark: dark}
			}
		}
		return nil
	default:
		return nil
	}
}

// PlainTheme returns an unstyled theme apart from borders, used as the fallback.
func PlainTheme(name string) *Theme {
	none := lipgloss.NewStyle()
	bordered := none.Border(lipgloss.NormalBorder())
	return &Theme{
		Name:           name,
		GlamourStyle:   "notty",
		Title:          none,
		Subtitle:       none,
		Label:          none,
		FieldFocused:   bordered,
		FieldBlurred:   bordered,
		Button:         none.Padding(0, 2),
		ButtonFocused:  none.Padding(0, 2).Underline(true),
		ButtonDisabled: none.Padding(0, 2).Faint(true),
		Loading:        none,
		Error:          none,
		Placeholder:    none,
		Response:       none,
		Output:         bordered.Padding(0, 1),
		Hint:           none,
	}
}

// GetAvailableThemes returns the sorted list of available theme names.
func (t *ThemeService) GetAvailableThemes() []string {
	themes := make([]string, 0, len(t.themes))
	for name := range t.themes {
		themes = append(themes, name)
	}
	sort.Strings(themes)
	return themes
}

// GetThemeByName retrieves a theme by name, case-insensitively.
// Always returns a valid theme: unknown names fall back to the plain theme.
func (t *ThemeService) GetThemeByName(theme string) *Theme {
	normalized := strings.ToLower(strings.TrimSpace(theme))
	if normalized == "" {
		normalized = "default"
	}
	if themeObj, exists := t.themes[normalized]; exists {
		return themeObj
	}
	logger.Debug("Invalid theme requested, using plain theme", "theme", theme, "available", t.GetAvailableThemes())
	return t.themes["plain"]
}

// themeStyle adapts a lipgloss style to output.TextStyle.
type themeStyle struct {
	style lipgloss.Style
}

func (s themeStyle) Render(text string) string {
	return s.style.Render(text)
}

// GetStyle maps printer semantics onto the theme so console output matches the form.
func (t *Theme) GetStyle(semantic string) output.TextStyle {
	switch output.SemanticType(semantic) {
	case output.SemanticHeading:
		return themeStyle{t.Title}
	case output.SemanticInfo:
		return themeStyle{t.Subtitle}
	case output.SemanticSuccess:
		return themeStyle{t.Label}
	case output.SemanticWarning:
		return themeStyle{t.Loading}
	case output.SemanticError:
		return themeStyle{t.Error}
	case output.SemanticHint:
		return themeStyle{t.Hint}
	default:
		return themeStyle{lipgloss.NewStyle()}
	}
}

// IsAvailable reports whether the theme can provide styles.
func (t *Theme) IsAvailable() bool {
	return t != nil
}
