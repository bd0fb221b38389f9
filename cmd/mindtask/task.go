package main

import (
	"fmt"

	"github.com/mark3labs/mindtask/internal/model"
	"github.com/mark3labs/mindtask/internal/preview"
	"github.com/mark3labs/mindtask/internal/tree"
	"github.com/mark3labs/mindtask/internal/workspace"
	"github.com/spf13/cobra"
)

var taskFlags struct {
	parent  string
	project string
	diff    bool
}

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage tasks of the selected project",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task, or a subtask with --parent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			st := ws.Store()
			if taskFlags.project != "" {
				p, err := st.Snapshot().ResolveProject(taskFlags.project)
				if err != nil {
					return err
				}
				st.SelectProject(p.ID)
			}

			var (
				task model.Task
				ok   bool
			)
			if taskFlags.parent == "" {
				if _, err := selectedProject(st); err != nil {
					return err
				}
				task, ok = st.CreateTask(args[0])
			} else {
				parent, err := st.Snapshot().ResolveTask(taskFlags.parent)
				if err != nil {
					return err
				}
				if !parent.IsTopLevel() {
					return fmt.Errorf("task %s is a subtask; subtasks cannot have children", parent.ID)
				}
				st.SelectProject(parent.ProjectID)
				st.SelectTask(parent.ID)
				task, ok = st.CreateSubtask(args[0])
			}
			if !ok {
				return fmt.Errorf("task text must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s: %s\n", task.ID, task.Text)
			return nil
		})
	},
}

var taskToggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"done"},
	Short:   "Toggle a task between open and completed",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			task, err := ws.Store().Snapshot().ResolveTask(args[0])
			if err != nil {
				return err
			}
			ws.Store().ToggleCompletion(task.ID)
			state := "completed"
			if task.Completed {
				state = "open"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", task.ID, state)
			return nil
		})
	},
}

var taskRenameCmd = &cobra.Command{
	Use:   "rename <id> <text>",
	Short: "Change a task's text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			task, err := ws.Store().Snapshot().ResolveTask(args[0])
			if err != nil {
				return err
			}
			if !ws.Store().RenameTask(task.ID, args[1]) {
				return fmt.Errorf("task text must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed task %s\n", task.ID)
			return nil
		})
	},
}

var taskRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task and its subtasks",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			task, err := ws.Store().Snapshot().ResolveTask(args[0])
			if err != nil {
				return err
			}
			ws.Store().DeleteTask(task.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", task.ID)
			return nil
		})
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <id> <target-id>",
	Short: "Drop a task onto another task",
	Long: `Drop a task onto another task of the same project.

Dropped onto a top-level task it becomes that task's subtask;
dropped onto a subtask it becomes its sibling. Either way it lands directly
after the target. Tasks that have subtasks cannot be moved.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			st := ws.Store()
			snap := st.Snapshot()
			dragged, err := snap.ResolveTask(args[0])
			if err != nil {
				return err
			}
			target, err := snap.ResolveTask(args[1])
			if err != nil {
				return err
			}

			before, _ := st.OutlineFor(dragged.ProjectID)
			if !st.Reparent(dragged.ID, target.ID) {
				return fmt.Errorf("cannot move %s onto %s", dragged.ID, target.ID)
			}
			after, _ := st.OutlineFor(dragged.ProjectID)

			if taskFlags.diff {
				th, err := activeTheme("")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), preview.StyleDiff(preview.Diff(before, after), th))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved task %s\n", dragged.ID)
			return nil
		})
	},
}

var taskSelectCmd = &cobra.Command{
	Use:   "use [id]",
	Short: "Select a task, or clear the task selection without an id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ws *workspace.Workspace) error {
			st := ws.Store()
			if len(args) == 0 {
				st.SelectTask("")
				return nil
			}
			task, err := st.Snapshot().ResolveTask(args[0])
			if err != nil {
				return err
			}
			st.SelectProject(task.ProjectID)
			st.SelectTask(task.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Selected task %s: %s\n", task.ID, task.Text)
			return nil
		})
	},
}

func selectedProject(st *tree.Store) (model.Project, error) {
	p, ok := st.Snapshot().SelectedProject()
	if !ok {
		return model.Project{}, fmt.Errorf("%w: run 'mindtask project use <id>'", workspace.ErrNoProject)
	}
	return p, nil
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskFlags.parent, "parent", "p", "", "Add as a subtask of this top-level task")
	taskAddCmd.Flags().StringVar(&taskFlags.project, "project", "", "Select this project first")
	taskMoveCmd.Flags().BoolVar(&taskFlags.diff, "diff", false, "Show the outline change as a diff")

	taskCmd.AddCommand(taskAddCmd, taskToggleCmd, taskRenameCmd, taskRemoveCmd, taskMoveCmd, taskSelectCmd)
}
