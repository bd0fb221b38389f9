package main

import (
	"fmt"

	"github.com/mark3labs/mindtask/internal/workspace"
	"github.com/spf13/cobra"
)

var resetFlags struct {
	force bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every project of the workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetFlags.force {
			return fmt.Errorf("this deletes the whole %q workspace; rerun with --force", cfg.Workspace)
		}
		return withWorkspace(cmd, false, func(ws *workspace.Workspace) error {
			if err := ws.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace %s reset\n", ws.Name)
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetFlags.force, "force", "f", false, "Confirm the reset")
}
