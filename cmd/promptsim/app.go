package main

import (
	"fmt"

	"github.com/spf13/viper"

	"promptsim/internal/config"
	"promptsim/internal/lifecycle"
	"promptsim/internal/logger"
	"promptsim/internal/render"
	"promptsim/internal/services"
	"promptsim/pkg/simtypes"
)

// app holds the configured services shared by the commands.
type app struct {
	cfg       *config.Config
	provider  simtypes.ProviderCatalogEntry
	registry  *services.Registry
	catalog   *services.ProviderCatalogService
	debug     *services.DebugTransportService
	clipboard *services.ClipboardService
	theme     *services.Theme
	markdown  *services.MarkdownService
}

// loadApp reads configuration, configures logging and initializes services.
// quiet discards log output unless a log file is configured.
func loadApp(quiet bool) (*app, error) {
	loader := config.NewLoader(viper.GetViper(), config.Paths{ConfigDir: configDir})
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, quiet); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}

	registry := services.NewDefaultRegistry()
	if err := registry.InitializeAll(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, registry: registry}
	if a.catalog, err = services.Lookup[*services.ProviderCatalogService](registry, "provider_catalog"); err != nil {
		return nil, err
	}
	if a.debug, err = services.Lookup[*services.DebugTransportService](registry, "debug-transport"); err != nil {
		return nil, err
	}
	if a.clipboard, err = services.Lookup[*services.ClipboardService](registry, "clipboard"); err != nil {
		return nil, err
	}

	themes, err := services.Lookup[*services.ThemeService](registry, "theme")
	if err != nil {
		return nil, err
	}
	a.theme = themes.GetThemeByName(cfg.Theme)

	if cfg.Markdown {
		if a.markdown, err = services.Lookup[*services.MarkdownService](registry, "markdown"); err != nil {
			return nil, err
		}
	}

	logger.Debug("PromptSim configured", "provider", cfg.Provider, "theme", a.theme.Name, "config_dir", cfg.ConfigDir)
	return a, nil
}

// newClient resolves the configured provider and returns its LLM client.
func (a *app) newClient() (simtypes.LLMClient, error) {
	entry, err := a.catalog.GetProviderByID(a.cfg.Provider)
	if err != nil {
		return nil, err
	}
	if err := a.catalog.ValidateModel(entry.ID, a.cfg.Model, a.cfg.BaseURL != ""); err != nil {
		return nil, err
	}
	if err := a.cfg.ResolveProvider(entry); err != nil {
		return nil, err
	}
	a.provider = entry

	factory, err := services.Lookup[*services.ClientFactoryService](a.registry, "client_factory")
	if err != nil {
		return nil, err
	}
	if a.cfg.DebugNetwork {
		factory.SetDebugTransport(a.debug.CreateTransport())
	}
	return factory.GetClientForProvider(entry.ClientType, a.cfg.APIKey, a.cfg.ModelConfig())
}

// newController creates the session controller for client.
func (a *app) newController(client simtypes.LLMClient, systemPrompt string) *lifecycle.Controller {
	return lifecycle.New(client,
		lifecycle.WithDefaultSystemPrompt(systemPrompt),
		lifecycle.WithTimeout(a.cfg.RequestTimeout),
		lifecycle.WithLogger(logger.NewStyledLogger("Lifecycle")),
		lifecycle.WithObserver(a.observe),
	)
}

// observe dumps the captured HTTP exchange whenever a submission resolves.
func (a *app) observe(state lifecycle.State) {
	if !a.cfg.DebugNetwork || state.IsLoading {
		return
	}
	if data := a.debug.GetCapturedData(); data != "" {
		logger.Debug("HTTP exchange", "submission", state.SubmissionID, "data", data)
		a.debug.ClearCapturedData()
	}
}

func (a *app) newRenderer() *render.Renderer {
	if a.markdown == nil {
		return render.NewRenderer(a.theme, nil)
	}
	return render.NewRenderer(a.theme, a.markdown)
}

func (a *app) providerName() string {
	if a.provider.DisplayName != "" {
		return a.provider.DisplayName
	}
	return a.cfg.Provider
}
