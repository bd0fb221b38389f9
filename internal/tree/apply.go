package tree

import (
	"slices"

	"github.com/mark3labs/mindtask/internal/model"
)

// apply validates c against the current state and, if valid, swaps in the
// resulting collections. Text fields of c are normalized in place so that
// listeners and journals record what was actually stored.
// Must be called with s.mu held.
func (s *Store) apply(c *Change) bool {
	switch c.Kind {
	case ProjectCreated:
		return s.createProject(c)
	case ProjectRenamed:
		return s.renameProject(c)
	case ProjectDeleted:
		return s.deleteProject(c)
	case ProjectSelected:
		return s.selectProject(c)
	case TaskCreated:
		return s.createTask(c)
	case TaskToggled:
		return s.toggleTask(c)
	case TaskRenamed:
		return s.renameTask(c)
	case TaskDeleted:
		return s.deleteTask(c)
	case TaskMoved:
		return s.moveTask(c)
	case TaskSelected:
		return s.selectTask(c)
	default:
		return false
	}
}

func (s *Store) createProject(c *Change) bool {
	c.Text = model.NormalizeText(c.Text)
	if c.Text == "" || c.ProjectID == "" || s.projectIndex(c.ProjectID) >= 0 {
		return false
	}
	s.projects = append(slices.Clone(s.projects), model.Project{ID: c.ProjectID, Name: c.Text})
	s.selectedProject = c.ProjectID
	s.selectedTask = ""
	return true
}

func (s *Store) renameProject(c *Change) bool {
	c.Text = model.NormalizeText(c.Text)
	i := s.projectIndex(c.ProjectID)
	if c.Text == "" || i < 0 {
		return false
	}
	projects := slices.Clone(s.projects)
	projects[i].Name = c.Text
	s.projects = projects
	return true
}

func (s *Store) deleteProject(c *Change) bool {
	if s.projectIndex(c.ProjectID) < 0 {
		return false
	}
	s.projects = slices.DeleteFunc(slices.Clone(s.projects), func(p model.Project) bool {
		return p.ID == c.ProjectID
	})
	s.tasks = slices.DeleteFunc(slices.Clone(s.tasks), func(t model.Task) bool {
		return t.ProjectID == c.ProjectID
	})
	if s.selectedProject == c.ProjectID {
		s.selectedProject = ""
	}
	if s.taskIndex(s.selectedTask) < 0 {
		s.selectedTask = ""
	}
	return true
}

func (s *Store) selectProject(c *Change) bool {
	if c.ProjectID == "" {
		s.selectedProject = ""
		s.selectedTask = ""
		return true
	}
	if s.projectIndex(c.ProjectID) < 0 {
		return false
	}
	s.selectedProject = c.ProjectID
	if i := s.taskIndex(s.selectedTask); i < 0 || s.tasks[i].ProjectID != c.ProjectID {
		s.selectedTask = ""
	}
	return true
}

func (s *Store) createTask(c *Change) bool {
	c.Text = model.NormalizeText(c.Text)
	if c.Text == "" || c.TaskID == "" || s.taskIndex(c.TaskID) >= 0 {
		return false
	}
	if s.projectIndex(c.ProjectID) < 0 {
		return false
	}
	if c.ParentID != "" {
		i := s.taskIndex(c.ParentID)
		if i < 0 {
			return false
		}
		parent := s.tasks[i]
		// Children only hang off top-level tasks of the same project.
		if parent.ProjectID != c.ProjectID || !parent.IsTopLevel() {
			return false
		}
	}
	s.tasks = append(slices.Clone(s.tasks), model.Task{
		ID:        c.TaskID,
		Text:      c.Text,
		ParentID:  c.ParentID,
		ProjectID: c.ProjectID,
	})
	return true
}

func (s *Store) toggleTask(c *Change) bool {
	i := s.taskIndex(c.TaskID)
	if i < 0 {
		return false
	}
	tasks := slices.Clone(s.tasks)
	tasks[i].Completed = !tasks[i].Completed
	s.tasks = tasks
	c.ProjectID = tasks[i].ProjectID
	return true
}

func (s *Store) renameTask(c *Change) bool {
	c.Text = model.NormalizeText(c.Text)
	i := s.taskIndex(c.TaskID)
	if c.Text == "" || i < 0 {
		return false
	}
	tasks := slices.Clone(s.tasks)
	tasks[i].Text = c.Text
	s.tasks = tasks
	c.ProjectID = tasks[i].ProjectID
	return true
}

func (s *Store) deleteTask(c *Change) bool {
	i := s.taskIndex(c.TaskID)
	if i < 0 {
		return false
	}
	c.ProjectID = s.tasks[i].ProjectID
	s.tasks = slices.DeleteFunc(slices.Clone(s.tasks), func(t model.Task) bool {
		return t.ID == c.TaskID || t.ParentID == c.TaskID
	})
	if s.taskIndex(s.selectedTask) < 0 {
		s.selectedTask = ""
	}
	return true
}

// moveTask implements drag-and-drop reparenting. The new parent is inferred
// from the target's depth: a top-level target adopts the dragged task, a
// child target shares its parent with it.
func (s *Store) moveTask(c *Change) bool {
	if c.TaskID == c.TargetID {
		return false
	}
	di, ti := s.taskIndex(c.TaskID), s.taskIndex(c.TargetID)
	if di < 0 || ti < 0 {
		return false
	}
	dragged, target := s.tasks[di], s.tasks[ti]
	if dragged.ProjectID != target.ProjectID {
		return false
	}

	parent := target.ParentID
	if target.IsTopLevel() {
		parent = target.ID
	}
	// Dropping a task onto its own child would make it its own parent.
	if parent == dragged.ID {
		return false
	}
	// The dragged task always ends up as a child, so it may not have
	// children of its own.
	if slices.ContainsFunc(s.tasks, func(t model.Task) bool { return t.ParentID == dragged.ID }) {
		return false
	}

	tasks := slices.Delete(slices.Clone(s.tasks), di, di+1)
	ti = slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == target.ID })
	dragged.ParentID = parent
	s.tasks = slices.Insert(tasks, ti+1, dragged)

	c.ProjectID = dragged.ProjectID
	c.ParentID = parent
	return true
}

func (s *Store) selectTask(c *Change) bool {
	if c.TaskID == "" {
		s.selectedTask = ""
		return true
	}
	i := s.taskIndex(c.TaskID)
	if i < 0 || s.tasks[i].ProjectID != s.selectedProject {
		return false
	}
	s.selectedTask = c.TaskID
	return true
}
