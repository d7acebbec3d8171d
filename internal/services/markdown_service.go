package services

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"promptsim/internal/logger"
)

// defaultWordWrap is the wrap width used until the output pane reports its size.
const defaultWordWrap = 80

// MarkdownService renders model responses as terminal Markdown using Glamour.
// Renderers are cached per style and width since building one is not free.
type MarkdownService struct {
	initialized bool
	style       string
	width       int
	renderer    *glamour.TermRenderer
	mu          sync.Mutex
}

// NewMarkdownService creates a new MarkdownService instance.
func NewMarkdownService() *MarkdownService {
	return &MarkdownService{
		initialized: false,
		style:       "auto",
		width:       defaultWordWrap,
	}
}

// Name returns the service name "markdown" for registration.
func (m *MarkdownService) Name() string {
	return "markdown"
}

// Initialize marks the service ready. The renderer is built on first use so
// that the terminal background is only queried when something is rendered.
func (m *MarkdownService) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initialized = true
	logger.Debug("MarkdownService initialized successfully")
	return nil
}

// Configure sets the Glamour style and word wrap width for later renders.
// Supported styles include: "auto", "dark", "light", "notty", "ascii".
func (m *MarkdownService) Configure(style string, width int) error {
	if width <= 0 {
		return fmt.Errorf("word wrap width must be positive, got %d", width)
	}
	if style == "" {
		style = "auto"
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if style != m.style || width != m.width {
		m.style = style
		m.width = width
		m.renderer = nil
	}
	return nil
}

// Render renders markdown content to ANSI terminal output.
func (m *MarkdownService) Render(markdown string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return "", fmt.Errorf("markdown service not initialized")
	}

	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("markdown content cannot be empty")
	}

	if m.renderer == nil {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(ResolveGlamourStyle(m.style)),
			glamour.WithWordWrap(m.width),
		)
		if err != nil {
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		m.renderer = renderer
	}

	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return strings.Trim(rendered, "\n"), nil
}

// ResolveGlamourStyle maps "auto" to a concrete style based on the terminal.
// Terminals without color support get "notty".
func ResolveGlamourStyle(style string) string {
	if style != "" && style != "auto" {
		return style
	}
	output := termenv.NewOutput(os.Stdout)
	if output.Profile == termenv.Ascii {
		return "notty"
	}
	if output.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
