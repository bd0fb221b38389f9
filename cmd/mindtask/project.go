package main

import (
	"fmt"

	"github.com/mark3labs/mindtask/internal/workspace"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"p"},
	Short:   "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project and select it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			p, ok := ws.Store().CreateProject(args[0])
			if !ok {
				return fmt.Errorf("project name must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s: %s\n", p.ID, p.Name)
			return nil
		})
	},
}

var projectListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List projects",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, false, func(ws *workspace.Workspace) error {
			snap := ws.Store().Snapshot()
			if len(snap.Projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects")
				return nil
			}
			for _, p := range snap.Projects {
				mark := " "
				if p.ID == snap.SelectedProjectID {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s (%d tasks)\n", mark, p.ID, p.Name, len(snap.ProjectTasks(p.ID)))
			}
			return nil
		})
	},
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			p, err := ws.Store().Snapshot().ResolveProject(args[0])
			if err != nil {
				return err
			}
			if !ws.Store().RenameProject(p.ID, args[1]) {
				return fmt.Errorf("project name must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed project %s\n", p.ID)
			return nil
		})
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a project and its tasks",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			p, err := ws.Store().Snapshot().ResolveProject(args[0])
			if err != nil {
				return err
			}
			ws.Store().DeleteProject(p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s: %s\n", p.ID, p.Name)
			return nil
		})
	},
}

var projectUseCmd = &cobra.Command{
	Use:   "use [id]",
	Short: "Select a project, or clear the selection without an id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			if len(args) == 0 {
				ws.Store().SelectProject("")
				fmt.Fprintln(cmd.OutOrStdout(), "Selection cleared")
				return nil
			}
			p, err := ws.Store().Snapshot().ResolveProject(args[0])
			if err != nil {
				return err
			}
			ws.Store().SelectProject(p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Selected project %s: %s\n", p.ID, p.Name)
			return nil
		})
	},
}

func init() {
	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectRenameCmd, projectRemoveCmd, projectUseCmd)
}
