package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stickify/stickify-e2e/internal/ai"
	"github.com/stickify/stickify-e2e/internal/browser"
	"github.com/stickify/stickify-e2e/internal/pages"
)

var (
	output   string
	provider string
	model    string
)

func newDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft <url> <prompt>",
		Short: "Draft a scenario file from a plain-language request",
		Long: `draft opens the page, maps its interactive elements and asks a language
model to write a scenario for the request. Review the file before running it.`,
		Args: cobra.ExactArgs(2),
		RunE: draftScenario,
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&provider, "provider", "", "AI provider: claude, openai (default: from env or claude)")
	cmd.Flags().StringVar(&model, "model", "", "Specific model override")
	return cmd
}

func draftScenario(cmd *cobra.Command, args []string) error {
	url := args[0]
	prompt := args[1]

	selectedProvider := provider
	if selectedProvider == "" {
		selectedProvider = cfg.Provider
	}

	logVerbose("  URL: %s", url)
	logVerbose("  Prompt: %s", prompt)
	logVerbose("  Provider: %s", selectedProvider)

	aiProvider, err := ai.NewProvider(selectedProvider, model, cfg.APIKey(selectedProvider))
	if err != nil {
		return fmt.Errorf("AI provider init failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "→ Mapping %s... ", url)
	b, err := browser.Launch(cfg.BrowserOptions())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed")
		return err
	}
	defer b.Close()

	if err := b.Navigate(cmd.Context(), url); err != nil {
		fmt.Fprintln(os.Stderr, "failed")
		return fmt.Errorf("navigation failed: %w", err)
	}
	pageMap, err := b.Snapshot(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed")
		return fmt.Errorf("page mapping failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "done (found %d interactive elements)\n", len(pageMap.Fields))

	fmt.Fprintf(os.Stderr, "→ Drafting scenario via %s... ", selectedProvider)
	sc, err := aiProvider.Draft(cmd.Context(), pageMap, prompt)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed")
		return fmt.Errorf("drafting failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "done (%d steps)\n", len(sc.Steps))

	data, err := sc.Marshal()
	if err != nil {
		return err
	}
	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "✓ Saved to %s\n", output)
	return nil
}

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the page targets scenarios can refer to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tELEMENT\tSELECTOR")
			for _, name := range pages.Names() {
				t := pages.Catalog[name]
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, t.Name(), t.Selector())
			}
			return w.Flush()
		},
	}
}
