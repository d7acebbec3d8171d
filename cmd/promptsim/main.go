// Package main provides the PromptSim CLI application entry point.
// PromptSim lets you edit a system prompt and a user query, send them to a
// hosted LLM and inspect the response, interactively or from scripts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"promptsim/internal/config"
	"promptsim/internal/version"
)

var configDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "promptsim",
	Short: "LLM Prompt Simulator",
	Long: `PromptSim is a terminal prompt simulator. Craft a system prompt, enter a query,
and see how a hosted large-language model responds.`,
	RunE:          runTUI, // Default behavior is to run the interactive form
	SilenceUsage:  true,
	SilenceErrors: true,
}

// tuiCmd represents the tui command (explicit version of default behavior)
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive prompt form",
	RunE:  runTUI,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		detailed, _ := cmd.Flags().GetBool("detailed")
		if detailed {
			fmt.Println(version.GetDetailedVersion())
			return
		}
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("provider", "", "LLM provider (gemini|anthropic|openai) [default: gemini]")
	flags.String("model", "", "Model name [default: provider default]")
	flags.String("base-url", "", "Base URL for OpenAI-compatible servers")
	flags.Float64("temperature", 0, "Sampling temperature (0-2)")
	flags.Int("max-tokens", 0, "Maximum output tokens")
	flags.String("system-prompt-file", "", "Read the default System Context from a file")
	flags.String("theme", "", "Color theme (default|dark|light|plain)")
	flags.Bool("markdown", true, "Render responses as Markdown")
	flags.Duration("request-timeout", 0, "Per-request timeout, 0 for none")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Bool("debug-network", false, "Log captured HTTP exchanges at debug level")
	flags.StringVar(&configDir, "config-dir", "", "Configuration directory [default: $XDG_CONFIG_HOME/promptsim]")

	// Bind flags to viper
	bindings := map[string]string{
		config.KeyProvider:         "provider",
		config.KeyModel:            "model",
		config.KeyBaseURL:          "base-url",
		config.KeyTemperature:      "temperature",
		config.KeyMaxTokens:        "max-tokens",
		config.KeySystemPromptFile: "system-prompt-file",
		config.KeyTheme:            "theme",
		config.KeyMarkdown:         "markdown",
		config.KeyRequestTimeout:   "request-timeout",
		config.KeyLogLevel:         "log-level",
		config.KeyLogFile:          "log-file",
		config.KeyDebugNetwork:     "debug-network",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	versionCmd.Flags().Bool("detailed", false, "Show build metadata")

	// Add subcommands
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(versionCmd)
}
