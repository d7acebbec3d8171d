package services

import (
	"fmt"
	"strings"
	"sync"

	"promptsim/internal/logger"
)

// ClipboardService copies response text to the system clipboard where the platform allows it.
type ClipboardService struct {
	once      sync.Once
	available bool
	initErr   error
}

// NewClipboardService creates a new ClipboardService instance.
func NewClipboardService() *ClipboardService {
	return &ClipboardService{}
}

// Name returns the service name "clipboard" for registration.
func (c *ClipboardService) Name() string {
	return "clipboard"
}

// Initialize never fails; an unavailable clipboard is reported by Copy instead.
func (c *ClipboardService) Initialize() error {
	c.init()
	return nil
}

func (c *ClipboardService) init() {
	c.once.Do(func() {
		if !clipboardAvailable {
			c.initErr = fmt.Errorf("clipboard not available on this platform")
			return
		}
		if err := initClipboard(); err != nil {
			c.initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
			logger.Debug("Clipboard unavailable", "error", err)
			return
		}
		c.available = true
	})
}

// Available reports whether Copy can succeed.
func (c *ClipboardService) Available() bool {
	c.init()
	return c.available
}

// Copy writes text to the clipboard.
func (c *ClipboardService) Copy(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to copy")
	}
	c.init()
	if c.initErr != nil {
		return c.initErr
	}
	return writeToClipboard(text)
}
