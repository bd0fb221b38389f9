// Package outline renders a project's task tree as indented outline text.
//
// The outline is the hand-off format between the task tree and the diagram:
//
//	- Project name
//	  - Top-level task
//	    - Child task
//	  - ~~Completed task~~
//
// Every line ends with a newline. Completed items are bracketed with the
// completion marker (see Mark).
package outline

import (
	"strings"

	"github.com/mark3labs/mindtask/internal/model"
)

// Line prefixes for each outline depth.
const (
	RootPrefix   = "- "
	ParentPrefix = "  - "
	ChildPrefix  = "    - "
)

// Serialize renders project and its tasks as outline text. Tasks belonging
// to other projects are ignored; order follows the tasks slice.
func Serialize(project model.Project, tasks []model.Task) string {
	var b strings.Builder
	b.WriteString(RootPrefix)
	b.WriteString(project.Name)
	b.WriteByte('\n')

	children := make(map[string][]model.Task)
	var parents []model.Task
	for _, t := range tasks {
		if t.ProjectID != project.ID {
			continue
		}
		if t.IsTopLevel() {
			parents = append(parents, t)
		} else {
			children[t.ParentID] = append(children[t.ParentID], t)
		}
	}

	for _, p := range parents {
		writeItem(&b, ParentPrefix, p)
		for _, c := range children[p.ID] {
			writeItem(&b, ChildPrefix, c)
		}
	}
	return b.String()
}

// ItemText returns the outline form of a task's text.
func ItemText(t model.Task) string {
	if t.Completed {
		return Mark(t.Text)
	}
	return t.Text
}

func writeItem(b *strings.Builder, prefix string, t model.Task) {
	b.WriteString(prefix)
	b.WriteString(ItemText(t))
	b.WriteByte('\n')
}
