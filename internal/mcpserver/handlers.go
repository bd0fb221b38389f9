package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mindtask/internal/mindmap"
	"github.com/mark3labs/mindtask/internal/theme"
	"github.com/mark3labs/mindtask/internal/tree"
)

// mutate runs fn with tool calls serialized and commits the workspace if
// fn succeeded.
func (s *Server) mutate(ctx context.Context, fn func(st *tree.Store) (string, error)) (*mcp.CallToolResult, error) {
	s.ops.Lock()
	defer s.ops.Unlock()

	msg, err := fn(s.ws.Store())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.ws.Commit(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("change applied but not saved: %v", err)), nil
	}
	return mcp.NewToolResultText(msg), nil
}

func (s *Server) handleProjectCreate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.mutate(ctx, func(st *tree.Store) (string, error) {
		p, ok := st.CreateProject(name)
		if !ok {
			return "", fmt.Errorf("project name must not be empty")
		}
		return fmt.Sprintf("Created project %s: %s", p.ID, p.Name), nil
	})
}

func (s *Server) handleProjectRename(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.mutate(ctx, func(st *tree.Store) (string, error) {
		p, err := st.Snapshot().ResolveProject(id)
		if err != nil {
			return "", err
		}
		if !st.RenameProject(p.ID, name) {
			return "", fmt.Errorf("project name must not be empty")
		}
		return fmt.Sprintf("Renamed project %s", p.ID), nil
	})
}

func (s *Server) handleProjectDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.mutate(ctx, func(st *tree.Store) (string, error) {
		p, err := st.Snapshot().ResolveProject(id)
		if err != nil {
			return "", err
		}
		st.DeleteProject(p.ID)
		return fmt.Sprintf("Deleted project %s: %s", p.ID, p.Name), nil
	})
}

func (s *Server) handleProjectSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.mutate(ctx, func(st *tree.Store) (string, error) {
		p, err := st.Snapshot().ResolveProject(id)
		if err != nil {
			return "", err
		}
		st.SelectProject(p.ID)
		return fmt.Sprintf("Selected project %s: %s", p.ID, p.Name), nil
	})
}

func (s *Server) handleProjectList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.ws.Store().Snapshot()
	if len(snap.Projects) == 0 {
		return mcp.NewToolResultText("No projects"), nil
	}

	var lines []string
	for _, p := range snap.Projects {
		mark := " "
		if p.ID == snap.SelectedProjectID {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s [%s] %s (%d tasks)", mark, p.ID, p.Name, len(snap.ProjectTasks(p.ID))))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) handleTaskAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	projectID := request.GetString("project_id", "")

	return s.mutate(ctx, func(st *tree.Store) (string, error) {
		if projectID != "" {
			p, err := st.Snapshot().ResolveProject(projectID)
			if err != nil {
				return "", err
			}
			if p.ID != st.Snapshot().SelectedProjectID {
				st.SelectProject(p.ID)
			}
		}
		if _, ok := st.Snapshot().SelectedProject(); !ok {
			return "", fmt.Errorf("no project selected")
		}
		task, ok := st.CreateTask(text)
		if !ok {
			return "", fmt.Errorf("task text must not be empty")
		}
		return fmt.Sprintf("Added task %s: %s", task.ID, task.Text), nil
	})
}

func (s *Server) handleSubtaskAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	parentID, err := request.RequireString("parent_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.mutate(ctx, func(st *tree.Store) (string, error) {
		snap := st.Snapshot()
		parent, err := snap.ResolveTask(parentID)
		if err != nil {
			return "", err
		}
		if !parent.IsTopLevel() {
			return "", fmt.Errorf("task %s is already a subtask; subtasks cannot have children", parent.ID)
		}
		if snap.SelectedProjectID != parent.ProjectID {
			st.SelectProject(parent.ProjectID)
		}
		if st.Snapshot().SelectedTaskID != parent.ID {
			st.SelectTask(parent.ID)
		}
		task, ok := st.CreateSubtask(text)
		if !ok {
			return "", fmt.Errorf("subtask text must not be empty")
		}
		return fmt.Sprintf("Added subtask %s under %s: %s", task.ID, parent.ID, task.Text), nil
	})
}

func (s *Server) handleTaskToggle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.mutate(ctx, func(st *tree.Store) (string, error) {
		task, err := st.Snapshot().ResolveTask(id)
		if err != nil {
			return "", err
		}
		st.ToggleCompletion(task.ID)
		state := "completed"
		if task.Completed {
			state = "open"
		}
		return fmt.Sprintf("Task %s is now %s", task.ID, state), nil
	})
}

func (s *Server) handleTaskRename(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.mutate(ctx, func(st *tree.Store) (string, error) {
		task, err := st.Snapshot().ResolveTask(id)
		if err != nil {
			return "", err
		}
		if !st.RenameTask(task.ID, text) {
			return "", fmt.Errorf("task text must not be empty")
		}
		return fmt.Sprintf("Renamed task %s", task.ID), nil
	})
}

func (s *Server) handleTaskDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.mutate(ctx, func(st *tree.Store) (string, error) {
		snap := st.Snapshot()
		task, err := snap.ResolveTask(id)
		if err != nil {
			return "", err
		}
		n := len(snap.Children(task.ID))
		st.DeleteTask(task.ID)
		if n > 0 {
			return fmt.Sprintf("Deleted task %s and %d subtasks", task.ID, n), nil
		}
		return fmt.Sprintf("Deleted task %s", task.ID), nil
	})
}

func (s *Server) handleTaskMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	targetID, err := request.RequireString("target_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.mutate(ctx, func(st *tree.Store) (string, error) {
		snap := st.Snapshot()
		dragged, err := snap.ResolveTask(id)
		if err != nil {
			return "", err
		}
		target, err := snap.ResolveTask(targetID)
		if err != nil {
			return "", err
		}
		if !st.Reparent(dragged.ID, target.ID) {
			return "", fmt.Errorf("cannot move %s onto %s: tasks must share a project, and a task with subtasks cannot be nested", dragged.ID, target.ID)
		}
		moved, _ := st.Snapshot().Task(dragged.ID)
		return fmt.Sprintf("Moved task %s under %s", moved.ID, moved.ParentID), nil
	})
}

// outlineFor returns the outline of the given project, or of the selected
// one when projectID is empty.
func (s *Server) outlineFor(projectID string) (string, error) {
	st := s.ws.Store()
	if projectID == "" {
		if _, ok := st.Snapshot().SelectedProject(); !ok {
			return "", fmt.Errorf("no project selected")
		}
		return st.Outline(), nil
	}
	p, err := st.Snapshot().ResolveProject(projectID)
	if err != nil {
		return "", err
	}
	text, _ := st.OutlineFor(p.ID)
	return text, nil
}

func (s *Server) handleOutlineGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.outlineFor(request.GetString("project_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleDiagramGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.outlineFor(request.GetString("project_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	markup := mindmap.Parse(text)

	name := request.GetString("theme", "")
	if name == "" {
		return mcp.NewToolResultText(markup), nil
	}
	th, ok := theme.Lookup(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown theme %q (available: %s)", name, strings.Join(theme.Names(), ", "))), nil
	}
	doc, err := theme.Document(markup, th)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(doc), nil
}

func (s *Server) handleOutlineParse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultError("missing or invalid 'text' parameter"), nil
	}
	return mcp.NewToolResultText(mindmap.Parse(text)), nil
}
