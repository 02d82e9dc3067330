package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/audit-iq-labs/auditiq/internal/api"
	"github.com/audit-iq-labs/auditiq/internal/auth"
	"github.com/audit-iq-labs/auditiq/internal/config"
	"github.com/audit-iq-labs/auditiq/internal/store"
	"github.com/audit-iq-labs/auditiq/internal/tui"
)

var (
	// CLI flags
	projectFlag string
	apiURLFlag  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "auditiq",
		Short: "Terminal UI for AI Act compliance checklists",
		Long: `auditiq is a terminal user interface for tracking regulatory
compliance checklists: obligation statuses, justifications, evidence
records, and document gap analysis.

Authentication:
  1. Environment variable: Set AUDITIQ_TOKEN
  2. Config file: Set access_token in ~/.config/auditiq/config.yaml

The token must belong to a user with access to the projects.`,
		RunE: run,
	}

	// Define CLI flags
	rootCmd.Flags().StringVar(&projectFlag, "project", "", "Project ID. Skips the project picker.")
	rootCmd.Flags().StringVar(&apiURLFlag, "api-url", "", "Backend base URL. Overrides config and AUDITIQ_API_URL.")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if apiURLFlag != "" {
		cfg.APIBaseURL = apiURLFlag
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = config.DefaultAPIBaseURL
	}

	tokens, err := auth.TokenSource(cfg)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w\n\nSet the AUDITIQ_TOKEN environment variable\nor add access_token to the config file", err)
	}

	client := api.New(cfg.APIBaseURL, tokens)
	s := store.New()
	ctx := context.Background()

	projectID := projectFlag
	if projectID == "" {
		projectID = cfg.DefaultProject
	}

	app := tui.NewAppModel(client, s, ctx, projectID)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}
