// Package simtypes defines theme configuration types for PromptSim's terminal styling.
package simtypes

// StyleConfig represents a single style definition in a theme YAML file.
type StyleConfig struct {
	Foreground interface{} `yaml:"foreground,omitempty"` // string or {light, dark}
	Background interface{} `yaml:"background,omitempty"` // string or {light, dark}
	Bold       *bool       `yaml:"bold,omitempty"`
	Italic     *bool       `yaml:"italic,omitempty"`
	Underline  *bool       `yaml:"underline,omitempty"`
	Faint      *bool       `yaml:"faint,omitempty"`
	Border     string      `yaml:"border,omitempty"` // "rounded", "normal", "thick" or empty
}

// ThemeStyles holds the named styles used by the prompt form and output pane.
type ThemeStyles struct {
	Title          StyleConfig `yaml:"title"`
	Subtitle       StyleConfig `yaml:"subtitle"`
	Label          StyleConfig `yaml:"label"`
	FieldFocused   StyleConfig `yaml:"field_focused"`
	FieldBlurred   StyleConfig `yaml:"field_blurred"`
	Button         StyleConfig `yaml:"button"`
	ButtonFocused  StyleConfig `yaml:"button_focused"`
	ButtonDisabled StyleConfig `yaml:"button_disabled"`
	Loading        StyleConfig `yaml:"loading"`
	Error          StyleConfig `yaml:"error"`
	Placeholder    StyleConfig `yaml:"placeholder"`
	Response       StyleConfig `yaml:"response"`
	Output         StyleConfig `yaml:"output"`
	Hint           StyleConfig `yaml:"hint"`
}

// ThemeConfig represents the complete theme configuration from YAML.
type ThemeConfig struct {
	Name         string      `yaml:"name"`
	GlamourStyle string      `yaml:"glamour_style"`
	Styles       ThemeStyles `yaml:"styles"`
}
