// Package output provides the console printer used by the non-interactive commands.
// Styling is injected through StyleProvider so the package does not depend on themes.
package output

// StyleProvider is implemented by themes that can style semantic output.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the style provider is ready to provide styles.
	IsAvailable() bool
}

// TextStyle renders text with styling.
type TextStyle interface {
	Render(text string) string
}

// Mode defines different output modes the printer can operate in.
type Mode int

const (
	// ModeAuto styles output only when the writer is a terminal
	ModeAuto Mode = iota

	// ModeStyled forces styled output
	ModeStyled

	// ModePlain forces plain text output
	ModePlain

	// ModeJSON outputs one JSON object per message
	ModeJSON
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

// Semantic types understood by the printer and by theme style providers.
const (
	SemanticPlain    SemanticType = "plain"
	SemanticInfo     SemanticType = "info"
	SemanticSuccess  SemanticType = "success"
	SemanticWarning  SemanticType = "warning"
	SemanticError    SemanticType = "error"
	SemanticHeading  SemanticType = "heading"
	SemanticHint     SemanticType = "hint"
	SemanticResponse SemanticType = "response"
)
