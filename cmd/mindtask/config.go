package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mindtask/internal/config"
	"github.com/spf13/cobra"
)

var configFlags struct {
	project bool
	force   bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create configuration files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_dir:  %s\n", cfg.DataDir)
		fmt.Fprintf(out, "workspace: %s\n", cfg.Workspace)
		fmt.Fprintf(out, "theme:     %s\n", cfg.Theme)
		fmt.Fprintf(out, "persist:   %t\n", cfg.Persist)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "mcp_addr:  %s\n", cfg.MCPAddr)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a mindtask configuration file",
	Long: `Create a mindtask configuration file with the default settings.

By default, creates a global config at ~/.config/mindtask/mindtask.yml.
Use --project to create a project-local config in the current directory.`,
	Args: cobra.NoArgs,
	// Runs without loading the existing config so a broken file can be replaced.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := config.GlobalPath()
		if configFlags.project {
			targetPath = config.ProjectPath()
		}

		if !configFlags.force && fileExists(targetPath) {
			return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
		}

		var err error
		if configFlags.project {
			err = config.WriteProject(config.Default())
		} else {
			err = config.WriteGlobal(config.Default())
		}
		if err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n", targetPath)
		return nil
	},
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func init() {
	configInitCmd.Flags().BoolVarP(&configFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	configInitCmd.Flags().BoolVarP(&configFlags.force, "force", "f", false, "Overwrite existing config file")
	configCmd.AddCommand(configInitCmd)
}
