package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mindtask/internal/model"
)

// MinPrefix is the shortest id prefix accepted by the Resolve methods.
const MinPrefix = 4

var (
	// ErrNotFound is returned when no entity matches an id or prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when a prefix matches more than one entity.
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// Snapshot is a point-in-time copy of the store.
type Snapshot struct {
	Projects          []model.Project `json:"projects"`
	Tasks             []model.Task    `json:"tasks"`
	SelectedProjectID string          `json:"selected_project_id,omitempty"`
	SelectedTaskID    string          `json:"selected_task_id,omitempty"`
}

// Project looks up a project by id.
func (sn Snapshot) Project(id string) (model.Project, bool) {
	for _, p := range sn.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// Task looks up a task by id.
func (sn Snapshot) Task(id string) (model.Task, bool) {
	for _, t := range sn.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// SelectedProject returns the selected project, if any.
func (sn Snapshot) SelectedProject() (model.Project, bool) {
	if sn.SelectedProjectID == "" {
		return model.Project{}, false
	}
	return sn.Project(sn.SelectedProjectID)
}

// ProjectTasks returns the tasks of one project in store order.
func (sn Snapshot) ProjectTasks(projectID string) []model.Task {
	var out []model.Task
	for _, t := range sn.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// Children returns the children of a task in store order.
func (sn Snapshot) Children(taskID string) []model.Task {
	var out []model.Task
	for _, t := range sn.Tasks {
		if t.ParentID == taskID && taskID != "" {
			out = append(out, t)
		}
	}
	return out
}

// ResolveProject finds a project by exact id or unique id prefix.
func (sn Snapshot) ResolveProject(idOrPrefix string) (model.Project, error) {
	ids := make([]string, len(sn.Projects))
	for i, p := range sn.Projects {
		ids[i] = p.ID
	}
	id, err := resolve("project", ids, idOrPrefix)
	if err != nil {
		return model.Project{}, err
	}
	p, _ := sn.Project(id)
	return p, nil
}

// ResolveTask finds a task by exact id or unique id prefix.
func (sn Snapshot) ResolveTask(idOrPrefix string) (model.Task, error) {
	ids := make([]string, len(sn.Tasks))
	for i, t := range sn.Tasks {
		ids[i] = t.ID
	}
	id, err := resolve("task", ids, idOrPrefix)
	if err != nil {
		return model.Task{}, err
	}
	t, _ := sn.Task(id)
	return t, nil
}

func resolve(kind string, ids []string, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", fmt.Errorf("%s id is required: %w", kind, ErrNotFound)
	}
	for _, id := range ids {
		if id == idOrPrefix {
			return id, nil
		}
	}

	if len(idOrPrefix) < MinPrefix {
		return "", fmt.Errorf("%s id prefix must be at least %d characters (got %d): %w", kind, MinPrefix, len(idOrPrefix), ErrNotFound)
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, idOrPrefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %s: %w", kind, idOrPrefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s %s matches %d ids: %w", kind, idOrPrefix, len(matches), ErrAmbiguous)
	}
}
