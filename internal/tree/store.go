// Package tree holds the authoritative project/task tree and every operation
// that mutates it.
//
// Mutations never edit collections in place: each builds new slices and swaps
// them in, so a caller sees either the old tree or the new one. Requests that
// fail validation (empty text, nothing selected, unknown ids, a move that
// would break the two-level shape) change nothing and report false.
package tree

import (
	"slices"
	"sync"

	"github.com/mark3labs/mindtask/internal/idgen"
	"github.com/mark3labs/mindtask/internal/logger"
	"github.com/mark3labs/mindtask/internal/model"
	"github.com/mark3labs/mindtask/internal/outline"
)

// Store owns projects, tasks and the current selection.
type Store struct {
	mu    sync.Mutex
	newID idgen.Func

	projects []model.Project
	tasks    []model.Task

	selectedProject string
	selectedTask    string

	listeners  []subscription
	nextListen int
}

type subscription struct {
	id int
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc sets the identifier generator used for new projects and tasks.
func WithIDFunc(fn idgen.Func) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{newID: idgen.New}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to receive an Update after every applied change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextListen++
	id := s.nextListen
	s.listeners = append(slices.Clone(s.listeners), subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(slices.Clone(s.listeners), func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// CreateProject appends a project and selects it.
func (s *Store) CreateProject(name string) (model.Project, bool) {
	c, ok := s.run(func() Change {
		return Change{Kind: ProjectCreated, ProjectID: s.newID(), Text: name}
	})
	if !ok {
		return model.Project{}, false
	}
	return model.Project{ID: c.ProjectID, Name: c.Text}, true
}

// CreateTask appends a top-level task to the selected project.
func (s *Store) CreateTask(text string) (model.Task, bool) {
	c, ok := s.run(func() Change {
		return Change{Kind: TaskCreated, TaskID: s.newID(), ProjectID: s.selectedProject, Text: text}
	})
	if !ok {
		return model.Task{}, false
	}
	return taskFromChange(c), true
}

// CreateSubtask appends a child of the selected task.
func (s *Store) CreateSubtask(text string) (model.Task, bool) {
	c, ok := s.run(func() Change {
		if s.selectedTask == "" {
			return Change{}
		}
		return Change{
			Kind:      TaskCreated,
			TaskID:    s.newID(),
			ProjectID: s.selectedProject,
			ParentID:  s.selectedTask,
			Text:      text,
		}
	})
	if !ok {
		return model.Task{}, false
	}
	return taskFromChange(c), true
}

// ToggleCompletion flips the completed flag of one task.
func (s *Store) ToggleCompletion(taskID string) bool {
	_, ok := s.run(func() Change {
		return Change{Kind: TaskToggled, TaskID: taskID}
	})
	return ok
}

// RenameProject sets a project's name.
func (s *Store) RenameProject(projectID, name string) bool {
	_, ok := s.run(func() Change {
		return Change{Kind: ProjectRenamed, ProjectID: projectID, Text: name}
	})
	return ok
}

// DeleteProject removes a project and all of its tasks.
func (s *Store) DeleteProject(projectID string) bool {
	_, ok := s.run(func() Change {
		return Change{Kind: ProjectDeleted, ProjectID: projectID}
	})
	return ok
}

// RenameTask sets a task's text.
func (s *Store) RenameTask(taskID, text string) bool {
	_, ok := s.run(func() Change {
		return Change{Kind: TaskRenamed, TaskID: taskID, Text: text}
	})
	return ok
}

// DeleteTask removes a task together with its children.
func (s *Store) DeleteTask(taskID string) bool {
	_, ok := s.run(func() Change {
		return Change{Kind: TaskDeleted, TaskID: taskID}
	})
	return ok
}

// Reparent handles dropping the dragged task onto the target task.
//
// Dropped onto a top-level task, the dragged task becomes its child.
// Dropped onto a child task, it becomes a sibling of that child. Either way
// it is re-inserted directly after the target.
func (s *Store) Reparent(draggedID, targetID string) bool {
	_, ok := s.run(func() Change {
		return Change{Kind: TaskMoved, TaskID: draggedID, TargetID: targetID}
	})
	return ok
}

// SelectProject selects a project, or clears the whole selection when
// projectID is empty. A selected task outside the project is deselected.
func (s *Store) SelectProject(projectID string) bool {
	_, ok := s.run(func() Change {
		return Change{Kind: ProjectSelected, ProjectID: projectID}
	})
	return ok
}

// SelectTask selects a task of the selected project, or clears the task
// selection when taskID is empty.
func (s *Store) SelectTask(taskID string) bool {
	_, ok := s.run(func() Change {
		return Change{Kind: TaskSelected, TaskID: taskID}
	})
	return ok
}

// Apply re-executes a recorded change. Identifiers are taken from the
// change rather than generated.
func (s *Store) Apply(c Change) bool {
	_, ok := s.run(func() Change { return c })
	return ok
}

// Outline returns the selected project's outline text, or "" when no
// project is selected.
func (s *Store) Outline() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outlineLocked()
}

// OutlineFor returns the outline text of any project.
func (s *Store) OutlineFor(projectID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(projectID)
	if i < 0 {
		return "", false
	}
	return outline.Serialize(s.projects[i], s.tasks), true
}

// Snapshot returns a copy of the current tree and selection.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Projects:          slices.Clone(s.projects),
		Tasks:             slices.Clone(s.tasks),
		SelectedProjectID: s.selectedProject,
		SelectedTaskID:    s.selectedTask,
	}
}

// run builds a change under the lock, applies it and notifies listeners
// once the lock is released.
func (s *Store) run(build func() Change) (Change, bool) {
	s.mu.Lock()
	c := build()
	if !s.apply(&c) {
		s.mu.Unlock()
		logger.Debug("Rejected change: kind=%s project=%s task=%s target=%s", c.Kind, c.ProjectID, c.TaskID, c.TargetID)
		return c, false
	}
	u := Update{Change: c, Outline: s.outlineLocked()}
	listeners := s.listeners
	s.mu.Unlock()

	logger.Debug("Applied change: kind=%s project=%s task=%s", c.Kind, c.ProjectID, c.TaskID)
	for _, l := range listeners {
		l.fn(u)
	}
	return c, true
}

func (s *Store) outlineLocked() string {
	i := s.projectIndex(s.selectedProject)
	if i < 0 {
		return ""
	}
	return outline.Serialize(s.projects[i], s.tasks)
}

func (s *Store) projectIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.projects, func(p model.Project) bool { return p.ID == id })
}

func (s *Store) taskIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

func taskFromChange(c Change) model.Task {
	return model.Task{
		ID:        c.TaskID,
		Text:      c.Text,
		ParentID:  c.ParentID,
		ProjectID: c.ProjectID,
	}
}
