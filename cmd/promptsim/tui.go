package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"promptsim/internal/logger"
	"promptsim/internal/tui"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(true)
	if err != nil {
		return err
	}
	client, err := a.newClient()
	if err != nil {
		return err
	}

	controller := a.newController(client, a.cfg.SystemPrompt)
	opts := tui.Options{
		Context:      cmd.Context(),
		ProviderName: a.providerName(),
	}
	if a.clipboard.Available() {
		opts.Clipboard = a.clipboard
	}

	logger.Info("Starting PromptSim", "provider", a.cfg.Provider, "model", a.cfg.Model)
	program := tea.NewProgram(tui.New(controller, a.newRenderer(), opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
