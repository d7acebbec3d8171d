// Package render turns a session snapshot into the text shown in the output pane.
// Rendering is a pure function of the snapshot and the frame; nothing here
// mutates session state.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"promptsim/internal/lifecycle"
	"promptsim/internal/services"
)

// Display texts.
const (
	LoadingText     = "Generating response..."
	PlaceholderText = "The model's response will appear here."
	ErrorTitle      = "Error"
)

// Mode selects which of the four displays is shown.
type Mode int

const (
	// ModeEmpty shows the placeholder.
	ModeEmpty Mode = iota
	// ModeLoading shows the loading indicator.
	ModeLoading
	// ModeError shows the error message.
	ModeError
	// ModeResponse shows the model response.
	ModeResponse
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeError:
		return "error"
	case ModeResponse:
		return "response"
	default:
		return "empty"
	}
}

// ModeFor picks the display for s. Loading wins over an error, an error over a response.
func ModeFor(s lifecycle.State) Mode {
	switch {
	case s.IsLoading:
		return ModeLoading
	case s.ErrorMessage != "":
		return ModeError
	case s.Response != "":
		return ModeResponse
	default:
		return ModeEmpty
	}
}

// Frame carries the per-draw inputs that are not part of the session.
type Frame struct {
	// Width is the available text width; zero means unbounded.
	Width int
	// Spinner is the current loading glyph.
	Spinner string
}

// Markdown renders response text. *services.MarkdownService satisfies it.
type Markdown interface {
	Configure(style string, width int) error
	Render(markdown string) (string, error)
}

// Renderer draws session snapshots with a theme.
type Renderer struct {
	theme    *services.Theme
	markdown Markdown
}

// NewRenderer creates a Renderer. A nil markdown renderer shows responses as plain wrapped text.
func NewRenderer(theme *services.Theme, markdown Markdown) *Renderer {
	if theme == nil {
		theme = services.PlainTheme("plain")
	}
	return &Renderer{theme: theme, markdown: markdown}
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() *services.Theme {
	return r.theme
}

// Render returns the output pane content for s.
func (r *Renderer) Render(s lifecycle.State, f Frame) string {
	switch ModeFor(s) {
	case ModeLoading:
		text := LoadingText
		if f.Spinner != "" {
			text = f.Spinner + " " + text
		}
		return r.theme.Loading.Render(text)
	case ModeError:
		title := r.theme.Error.Render(ErrorTitle)
		return title + "\n" + r.wrap(r.theme.Error, s.ErrorMessage, f.Width)
	case ModeResponse:
		return r.renderResponse(s.Response, f.Width)
	default:
		return r.theme.Placeholder.Render(PlaceholderText)
	}
}

func (r *Renderer) renderResponse(text string, width int) string {
	if r.markdown != nil {
		mdWidth := width
		if mdWidth <= 0 {
			mdWidth = 80
		}
		if err := r.markdown.Configure(r.theme.GlamourStyle, mdWidth); err == nil {
			if rendered, err := r.markdown.Render(text); err == nil {
				return rendered
			}
		}
	}
	return r.wrap(r.theme.Response, text, width)
}

func (r *Renderer) wrap(style lipgloss.Style, text string, width int) string {
	if width > 0 {
		text = ansi.Wordwrap(text, width, "")
	}
	return style.Render(text)
}

// Plain renders s without styling or escape sequences, for non-terminal output.
func Plain(s lifecycle.State) string {
	switch ModeFor(s) {
	case ModeLoading:
		return LoadingText
	case ModeError:
		return ErrorTitle + ": " + ansi.Strip(s.ErrorMessage)
	case ModeResponse:
		return strings.TrimRight(ansi.Strip(s.Response), "\n")
	default:
		return PlaceholderText
	}
}
