package tree

// ChangeKind names a store mutation.
type ChangeKind string

const (
	ProjectCreated  ChangeKind = "project.create"
	ProjectRenamed  ChangeKind = "project.rename"
	ProjectDeleted  ChangeKind = "project.delete"
	ProjectSelected ChangeKind = "project.select"
	TaskCreated     ChangeKind = "task.create"
	TaskToggled     ChangeKind = "task.toggle"
	TaskRenamed     ChangeKind = "task.rename"
	TaskDeleted     ChangeKind = "task.delete"
	TaskMoved       ChangeKind = "task.move"
	TaskSelected    ChangeKind = "task.select"
)

// Change is a single applied mutation. Changes carry every identifier they
// touch, so applying the same sequence to an empty store rebuilds the same
// tree and selection.
type Change struct {
	Kind      ChangeKind `json:"kind"`
	ProjectID string     `json:"project_id,omitempty"`
	TaskID    string     `json:"task_id,omitempty"`
	ParentID  string     `json:"parent_id,omitempty"` // task.create: parent; task.move: resulting parent
	TargetID  string     `json:"target_id,omitempty"` // task.move: drop target
	Text      string     `json:"text,omitempty"`      // new name or task text
}

// Update is delivered to listeners after every applied change.
type Update struct {
	Change Change

	// Outline is the selected project's outline text after the change,
	// or empty when no project is selected.
	Outline string
}

// Listener receives updates in the goroutine that performed the mutation.
type Listener func(Update)

// Mutates reports whether the change alters projects or tasks, as opposed
// to only moving the selection.
func (c Change) Mutates() bool {
	switch c.Kind {
	case ProjectSelected, TaskSelected:
		return false
	default:
		return true
	}
}
