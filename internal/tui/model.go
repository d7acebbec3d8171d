// Package tui implements the interactive prompt form: two inputs, a Generate
// trigger and an output pane, driven by a lifecycle.Controller.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"promptsim/internal/lifecycle"
	"promptsim/internal/render"
)

const (
	title    = "LLM Prompt Simulator"
	subtitle = "Craft your system prompt, enter a query, and get a simulated response."

	buttonLabel        = "Generate"
	buttonLoadingLabel = "Generating..."

	twoColumnMinWidth = 100
	minOutputHeight   = 5
	statusDuration    = 3 * time.Second
)

type focusTarget int

const (
	focusSystem focusTarget = iota
	focusQuery
	focusButton
	focusCount
)

// Copier writes text to a clipboard.
type Copier interface {
	Copy(text string) error
}

// Options configures the form.
type Options struct {
	// Context bounds every API call started from the form.
	Context context.Context
	// ProviderName is shown in the footer.
	ProviderName string
	// Clipboard enables ctrl+y; nil disables copying.
	Clipboard Copier
}

// Model is the root Bubble Tea model.
type Model struct {
	controller *lifecycle.Controller
	renderer   *render.Renderer
	opts       Options

	system   Field
	query    Field
	spinner  spinner.Model
	viewport viewport.Model
	focus    focusTarget

	width  int
	height int

	status    string
	statusSeq int
}

// New creates the form. The System Context field starts with the controller's current prompt.
func New(controller *lifecycle.Controller, renderer *render.Renderer, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	theme := renderer.Theme()
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Loading

	state := controller.State()
	m := Model{
		controller: controller,
		renderer:   renderer,
		opts:       opts,
		system:     NewSystemField(state.SystemPrompt),
		query:      NewQueryField(),
		spinner:    s,
		viewport:   viewport.New(80, minOutputHeight),
		focus:      focusQuery,
		width:      80,
		height:     40,
	}
	m.query.SetValue(state.UserQuery)
	m.query.Focus()
	m.layout()
	return m
}

// Init starts the cursor blink and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.controller.State().IsLoading {
			m.refreshOutput()
		}
		return m, cmd

	case resultMsg:
		_ = m.controller.Finish(msg.submission, msg.outcome)
		m.viewport.GotoTop()
		m.refreshOutput()
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "ctrl+s":
		return m.submit(true)
	case "ctrl+y":
		return m.copyResponse()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "enter", " ":
		if m.focus == focusButton {
			return m.submit(false)
		}
	}
	return m.updateFocused(msg)
}

// updateFocused routes msg to the focused input and reports edits to the controller.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd     tea.Cmd
		changed bool
	)
	switch m.focus {
	case focusSystem:
		m.system, cmd, changed = m.system.Update(msg)
		if changed {
			m.controller.SetSystemPrompt(m.system.Value())
		}
	case focusQuery:
		m.query, cmd, changed = m.query.Update(msg)
		if changed {
			m.controller.SetUserQuery(m.query.Value())
		}
	}
	return m, cmd
}

// submit starts a submission. The button honours its disabled state; the
// keyboard shortcut only refuses while loading, so a blank query reports
// the validation message.
func (m Model) submit(fromShortcut bool) (tea.Model, tea.Cmd) {
	state := m.controller.State()
	if state.IsLoading {
		return m, nil
	}
	if !fromShortcut && !state.CanSubmit() {
		return m, nil
	}

	sub, err := m.controller.Begin()
	m.refreshOutput()
	if err != nil {
		return m, nil
	}

	ctx := m.opts.Context
	call := func() tea.Msg {
		return resultMsg{submission: sub, outcome: sub.Call(ctx)}
	}
	return m, tea.Batch(call, m.spinner.Tick)
}

func (m Model) copyResponse() (tea.Model, tea.Cmd) {
	response := m.controller.State().Response
	switch {
	case m.opts.Clipboard == nil:
		return m.setStatus("Clipboard unavailable")
	case strings.TrimSpace(response) == "":
		return m.setStatus("Nothing to copy")
	}
	if err := m.opts.Clipboard.Copy(response); err != nil {
		return m.setStatus("Copy failed: " + err.Error())
	}
	return m.setStatus("Response copied to clipboard")
}

func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	seq := m.statusSeq
	return m, tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func (m *Model) setFocus(target focusTarget) tea.Cmd {
	m.focus = target
	m.system.Blur()
	m.query.Blur()
	switch target {
	case focusSystem:
		return m.system.Focus()
	case focusQuery:
		return m.query.Focus()
	}
	return nil
}

func (m Model) twoColumns() bool {
	return m.width >= twoColumnMinWidth
}

// layout sizes the inputs and the output pane for the current window.
func (m *Model) layout() {
	colWidth := m.width
	if m.twoColumns() {
		colWidth = (m.width - 2) / 2
	}
	m.system.SetWidth(colWidth)
	m.query.SetWidth(colWidth)

	// title, subtitle, blank line above the columns; hint and footer below
	chrome := 3 + 2
	// label and border for each field, plus the button row
	inputs := m.system.Rows() + 3 + m.query.Rows() + 3 + 2

	outputHeight := m.height - chrome - 2
	if !m.twoColumns() {
		outputHeight -= inputs
	}
	if outputHeight < minOutputHeight {
		outputHeight = minOutputHeight
	}

	m.viewport.Width = colWidth - 4
	m.viewport.Height = outputHeight
	m.refreshOutput()
}

func (m *Model) refreshOutput() {
	frame := render.Frame{Width: m.viewport.Width, Spinner: m.spinner.View()}
	m.viewport.SetContent(m.renderer.Render(m.controller.State(), frame))
}

// View draws the form.
func (m Model) View() string {
	theme := m.renderer.Theme()
	state := m.controller.State()

	header := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render(title),
		theme.Subtitle.Render(subtitle),
		"",
	)

	inputs := lipgloss.JoinVertical(lipgloss.Left,
		m.system.View(theme),
		m.query.View(theme),
		m.buttonView(state),
	)
	output := theme.Output.Render(m.viewport.View())

	var body string
	if m.twoColumns() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, inputs, "  ", output)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, inputs, output)
	}

	hint := "tab: switch field • ctrl+s: generate • ctrl+y: copy • pgup/pgdn: scroll • esc: quit"
	if m.status != "" {
		hint = m.status
	}
	footer := "Powered by " + m.providerName()

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		theme.Hint.Render(hint),
		theme.Subtitle.Render(footer),
	)
}

func (m Model) buttonView(state lifecycle.State) string {
	theme := m.renderer.Theme()
	label := buttonLabel
	if state.IsLoading {
		label = m.spinner.View() + " " + buttonLoadingLabel
	}

	style := theme.Button
	switch {
	case !state.CanSubmit():
		style = theme.ButtonDisabled
	case m.focus == focusButton:
		style = theme.ButtonFocused
	}
	return "\n" + style.Render(label)
}

func (m Model) providerName() string {
	if m.opts.ProviderName != "" {
		return m.opts.ProviderName
	}
	return "an LLM API"
}
