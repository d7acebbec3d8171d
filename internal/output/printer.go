package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
)

// Printer writes semantic output in plain, styled or JSON form.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	silent        bool

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes to os.Stdout with automatic mode detection.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

// Println outputs text with a newline without any semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text)
}

// Printf outputs formatted text with a newline without any semantic styling.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...))
}

// Info outputs informational text.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text)
}

// Success outputs success text.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text)
}

// Warning outputs warning text.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text)
}

// Error outputs error text.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text)
}

// Heading outputs a section heading.
func (p *Printer) Heading(text string) {
	p.output(SemanticHeading, text)
}

// Hint outputs secondary text.
func (p *Printer) Hint(text string) {
	p.output(SemanticHint, text)
}

// Response outputs model output. Pre-rendered ANSI is kept in styled mode
// and stripped in plain and JSON modes.
func (p *Printer) Response(text string) {
	p.output(SemanticResponse, text)
}

// Mode returns the configured output mode.
func (p *Printer) Mode() Mode {
	return p.mode
}

// Styled reports whether output will carry styling.
func (p *Printer) Styled() bool {
	switch p.mode {
	case ModeStyled:
		return p.styleProvider != nil
	case ModeAuto:
		return p.styleProvider != nil && IsTerminal(p.writer)
	default:
		return false
	}
}

func (p *Printer) output(semantic SemanticType, text string) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string
	switch {
	case p.mode == ModeJSON:
		finalText = p.renderJSON(semantic, text)
	case p.Styled():
		finalText = p.styleProvider.GetStyle(string(semantic)).Render(text)
	default:
		finalText = NewPlainStyleProvider().GetStyle(string(semantic)).Render(ansi.Strip(text))
	}

	if !strings.HasSuffix(finalText, "\n") {
		finalText += "\n"
	}
	_, _ = fmt.Fprint(p.writer, finalText) // Ignore write errors for output operations
}

func (p *Printer) renderJSON(semantic SemanticType, text string) string {
	jsonBytes, err := json.Marshal(map[string]interface{}{
		"type":    semantic,
		"message": ansi.Strip(text),
	})
	if err != nil {
		// Fall back to plain text if JSON encoding fails
		return text
	}
	return string(jsonBytes)
}
