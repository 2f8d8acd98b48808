package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/devcorp/internal/config"
	"github.com/kingrea/devcorp/internal/tui"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	var workDir string
	root := &cobra.Command{
		Use:   "devcorp",
		Short: "Staffing projections for a Development Corporation",
		Long: "devcorp estimates how many people a Development Corporation needs across\n" +
			"its 25-year lifecycle, from feasibility through wind down.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := resolveDir(workDir)
			if err != nil {
				return err
			}
			return runDashboard(dir)
		},
	}
	root.PersistentFlags().StringVar(&workDir, "dir", "", "Working directory holding .devcorp/ (default: current directory)")

	root.AddCommand(newProjectCmd(&workDir))
	root.AddCommand(newPhasesCmd(&workDir))
	return root
}

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

func runDashboard(dir string) error {
	if err := config.InitStateDir(dir); err != nil {
		return fmt.Errorf("initialize %s: %w", config.StateDir, err)
	}
	app, err := tui.NewApp(dir)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
