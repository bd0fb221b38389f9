package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

func (s *Server) registerTools() {
	idArg := func(desc string) mcp.ToolOption {
		return mcp.WithString("id", mcp.Required(), mcp.Description(desc))
	}
	optionalProject := mcp.WithString("project_id",
		mcp.Description("Project id or unique prefix; defaults to the selected project"),
	)

	s.mcpServer.AddTool(
		mcp.NewTool("project-create",
			mcp.WithDescription("Create a project and select it"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
		),
		s.handleProjectCreate,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("project-rename",
			mcp.WithDescription("Rename a project"),
			idArg("Project id or unique prefix"),
			mcp.WithString("name", mcp.Required(), mcp.Description("New name")),
		),
		s.handleProjectRename,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("project-delete",
			mcp.WithDescription("Delete a project and all of its tasks"),
			idArg("Project id or unique prefix"),
		),
		s.handleProjectDelete,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("project-select",
			mcp.WithDescription("Select the project whose outline and diagram are shown"),
			idArg("Project id or unique prefix"),
		),
		s.handleProjectSelect,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("project-list",
			mcp.WithDescription("List projects; the selected one is marked with *"),
		),
		s.handleProjectList,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("task-add",
			mcp.WithDescription("Add a top-level task to a project"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Task text")),
			optionalProject,
		),
		s.handleTaskAdd,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("subtask-add",
			mcp.WithDescription("Add a subtask under a top-level task"),
			mcp.WithString("parent_id", mcp.Required(), mcp.Description("Parent task id or unique prefix")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Subtask text")),
		),
		s.handleSubtaskAdd,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("task-toggle",
			mcp.WithDescription("Toggle a task between open and completed"),
			idArg("Task id or unique prefix"),
		),
		s.handleTaskToggle,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("task-rename",
			mcp.WithDescription("Change a task's text"),
			idArg("Task id or unique prefix"),
			mcp.WithString("text", mcp.Required(), mcp.Description("New text")),
		),
		s.handleTaskRename,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("task-delete",
			mcp.WithDescription("Delete a task and its subtasks"),
			idArg("Task id or unique prefix"),
		),
		s.handleTaskDelete,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("task-move",
			mcp.WithDescription("Drop a task onto another: onto a top-level task it becomes its subtask, onto a subtask it becomes a sibling"),
			idArg("Dragged task id or unique prefix"),
			mcp.WithString("target_id", mcp.Required(), mcp.Description("Target task id or unique prefix")),
		),
		s.handleTaskMove,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("outline-get",
			mcp.WithDescription("Get a project's outline text"),
			optionalProject,
		),
		s.handleOutlineGet,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("diagram-get",
			mcp.WithDescription("Get a project's mindmap diagram markup"),
			optionalProject,
			mcp.WithString("theme", mcp.Description("Theme name; when set the markup carries an init directive")),
		),
		s.handleDiagramGet,
	)
	s.mcpServer.AddTool(
		mcp.NewTool("outline-parse",
			mcp.WithDescription("Convert outline text to mindmap diagram markup"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Outline text")),
		),
		s.handleOutlineParse,
	)
}
