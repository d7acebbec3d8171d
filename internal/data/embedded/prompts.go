// Package embedded provides access to data files compiled into the PromptSim binary.
package embedded

import (
	_ "embed"
	"strings"
)

//go:embed default_system_prompt.md
var defaultSystemPrompt string

// DefaultSystemPrompt returns the compile-time default System Context text.
func DefaultSystemPrompt() string {
	return strings.TrimSpace(defaultSystemPrompt)
}
