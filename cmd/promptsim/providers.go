package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"promptsim/internal/config"
	"promptsim/internal/output"
	"promptsim/pkg/simtypes"
)

// providersCmd lists the provider catalog
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported providers and models",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(false)
		if err != nil {
			return err
		}
		providers, err := a.catalog.GetProviderCatalog()
		if err != nil {
			return err
		}
		printer := output.NewPrinter(output.WithWriter(cmd.OutOrStdout()), output.WithStyles(a.theme))
		printProviders(printer, providers, a.cfg)
		return nil
	},
}

// printProviders writes one block per catalog entry, marking the selected provider.
func printProviders(printer *output.Printer, providers []simtypes.ProviderCatalogEntry, cfg *config.Config) {
	printer.Heading("Providers")
	for _, p := range providers {
		marker := "  "
		if p.ID == cfg.Provider {
			marker = "* "
		}
		printer.Println("")
		printer.Success(fmt.Sprintf("%s%s (%s)", marker, p.ID, p.DisplayName))
		if p.Description != "" {
			printer.Hint("    " + p.Description)
		}
		printer.Printf("    default model: %s", p.DefaultModel)
		printer.Printf("    models: %s", strings.Join(p.Models, ", "))

		probe := *cfg
		probe.APIKey = ""
		if err := probe.ResolveProvider(p); err != nil {
			printer.Warning("    API key not set: " + strings.Join(p.APIKeyEnv, ", "))
		} else {
			printer.Info("    API key configured")
		}
	}
}
