package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"promptsim/internal/lifecycle"
	"promptsim/internal/output"
	"promptsim/internal/render"
	"promptsim/internal/services"
)

const defaultOutputWidth = 80

// askCmd sends a single query without the interactive form
var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Send one query and print the response",
	Long: `Send one query to the configured model and print the response.
The query is taken from the arguments, or from standard input when no
arguments are given. The exit status is 1 when the query is empty or the
request fails.`,
	Example: `  promptsim ask "Explain the theory of relativity in simple terms."
  echo "2+2?" | promptsim ask --system "Answer with a number only." --raw`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("system", "", "System Context for this query")
	askCmd.Flags().String("system-file", "", "Read the System Context for this query from a file")
	askCmd.Flags().Bool("raw", false, "Print the response without styling or Markdown rendering")
	askCmd.Flags().Bool("json", false, "Print the result as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	query, err := readQuery(args, cmd.InOrStdin(), term.IsTerminal(os.Stdin.Fd()))
	if err != nil {
		return err
	}

	a, err := loadApp(false)
	if err != nil {
		return err
	}

	system, _ := cmd.Flags().GetString("system")
	systemFile, _ := cmd.Flags().GetString("system-file")
	systemPrompt, err := resolveSystemPrompt(a.cfg.SystemPrompt, system, cmd.Flags().Changed("system"), systemFile)
	if err != nil {
		return err
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetBool("raw")
	asJSON, _ := cmd.Flags().GetBool("json")
	printer := newAskPrinter(cmd.OutOrStdout(), a.theme, raw, asJSON)

	controller := a.newController(client, systemPrompt)
	return ask(cmd.Context(), controller, query, a.newRenderer(), printer, outputWidth())
}

// readQuery joins the arguments, or reads stdin when there are none and it is not a terminal.
func readQuery(args []string, stdin io.Reader, stdinIsTerminal bool) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stdinIsTerminal || stdin == nil {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read query from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// resolveSystemPrompt applies the --system and --system-file overrides.
func resolveSystemPrompt(configured, system string, systemSet bool, systemFile string) (string, error) {
	if systemSet && systemFile != "" {
		return "", fmt.Errorf("use either --system or --system-file, not both")
	}
	if systemFile != "" {
		data, err := os.ReadFile(systemFile)
		if err != nil {
			return "", fmt.Errorf("failed to read system prompt file %s: %w", systemFile, err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	if systemSet {
		return system, nil
	}
	return configured, nil
}

func newAskPrinter(w io.Writer, theme *services.Theme, raw, asJSON bool) *output.Printer {
	switch {
	case asJSON:
		return output.NewPrinter(output.WithWriter(w), output.JSON())
	case raw:
		return output.NewPrinter(output.WithWriter(w), output.PlainText())
	default:
		return output.NewPrinter(output.WithWriter(w), output.WithStyles(theme))
	}
}

// ask runs one submission and prints the result. Failures are returned so the
// process exits non-zero; JSON output also reports them on stdout.
func ask(ctx context.Context, controller *lifecycle.Controller, query string, renderer *render.Renderer, printer *output.Printer, width int) error {
	controller.SetUserQuery(query)
	err := controller.Generate(ctx)
	state := controller.State()

	if err != nil {
		if printer.Mode() == output.ModeJSON {
			printer.Error(state.ErrorMessage)
		}
		return err
	}

	if printer.Styled() {
		printer.Response(renderer.Render(state, render.Frame{Width: width}))
	} else {
		printer.Response(render.Plain(state))
	}
	return nil
}

func outputWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 {
		return defaultOutputWidth
	}
	return width
}
