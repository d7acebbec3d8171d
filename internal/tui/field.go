package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"promptsim/internal/services"
)

const (
	systemFieldRows = 12
	queryFieldRows  = 5

	queryPlaceholder = "e.g., Explain the theory of relativity in simple terms."
)

// Field is a labelled multi-line text input.
type Field struct {
	Label string
	area  textarea.Model
}

func newField(label string, rows int) Field {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0 // no limit
	ta.Prompt = ""
	ta.SetHeight(rows)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	return Field{Label: label, area: ta}
}

// NewSystemField creates the System Context input holding value.
func NewSystemField(value string) Field {
	f := newField("System Context", systemFieldRows)
	f.area.SetValue(value)
	f.area.CursorStart()
	return f
}

// NewQueryField creates the empty User Query input.
func NewQueryField() Field {
	f := newField("User Query", queryFieldRows)
	f.area.Placeholder = queryPlaceholder
	return f
}

// Value returns the current text.
func (f Field) Value() string {
	return f.area.Value()
}

// SetValue replaces the text.
func (f *Field) SetValue(value string) {
	f.area.SetValue(value)
}

// Rows returns the visible height of the text area.
func (f Field) Rows() int {
	return f.area.Height()
}

// Focused reports whether the field receives key input.
func (f Field) Focused() bool {
	return f.area.Focused()
}

// SetWidth sets the outer width including the border.
func (f *Field) SetWidth(w int) {
	if w < 4 {
		w = 4
	}
	f.area.SetWidth(w - 2)
}

// Focus gives the field key input.
func (f *Field) Focus() tea.Cmd {
	return f.area.Focus()
}

// Blur removes key input from the field.
func (f *Field) Blur() {
	f.area.Blur()
}

// Update forwards msg to the text area and reports whether the value changed.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd, bool) {
	before := f.area.Value()
	var cmd tea.Cmd
	f.area, cmd = f.area.Update(msg)
	return f, cmd, f.area.Value() != before
}

// View draws the label above the bordered text area.
func (f Field) View(theme *services.Theme) string {
	box := theme.FieldBlurred
	if f.area.Focused() {
		box = theme.FieldFocused
	}
	return theme.Label.Render(f.Label) + "\n" + box.Render(f.area.View())
}
