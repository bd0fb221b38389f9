package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/mindtask/internal/config"
	"github.com/mark3labs/mindtask/internal/logger"
	"github.com/mark3labs/mindtask/internal/state"
	"github.com/mark3labs/mindtask/internal/theme"
	"github.com/mark3labs/mindtask/internal/workspace"
	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	dataDir   string
	workspace string
}

// cfg is loaded before any subcommand runs.
var cfg *config.Config

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mindtask",
	Short: "Project task trees rendered as mindmaps",
	Long: `mindtask keeps projects as two-level task trees (tasks and subtasks),
serializes the selected project to an outline and turns that outline into
mermaid mindmap markup.

Changes are journaled to an embedded NATS JetStream store under the data
directory, so every command sees the tree the previous one left behind.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.workspace, "workspace", "w", "", "Workspace name (overrides config)")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(diagramCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if rootFlags.dataDir != "" {
		loaded.DataDir = rootFlags.dataDir
	}
	if rootFlags.workspace != "" {
		loaded.Workspace = rootFlags.workspace
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Configure(loaded.LogLevel, loaded.LogFile); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// withWorkspace opens the configured workspace, runs fn and closes it.
// When commit is set the changes fn made are flushed before closing.
func withWorkspace(cmd *cobra.Command, commit bool, fn func(ws *workspace.Workspace) error) error {
	ctx := cmd.Context()
	ws, err := workspace.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening workspace: %w", err)
	}
	defer func() {
		if err := ws.Close(); err != nil {
			logger.Warn("Closing workspace: %v", err)
		}
	}()

	if err := fn(ws); err != nil {
		return err
	}
	if commit {
		return ws.Commit(ctx)
	}
	return nil
}

// activeTheme resolves the theme to render with: an explicit name wins,
// then the saved UI choice, then the configured default.
func activeTheme(name string) (*theme.Theme, error) {
	if name == "" {
		name = state.Load(cfg.DataDir).ThemeOr(cfg.Theme)
	}
	th, ok := theme.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %v)", name, theme.Names())
	}
	return th, nil
}
