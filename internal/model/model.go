// Package model defines the project and task records shared by the store,
// the outline serializer and the journal.
package model

import "strings"

// Project is the root of one outline.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is a single entry in a project's outline.
// An empty ParentID marks a top-level task; otherwise ParentID names a
// top-level task in the same project.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	ParentID  string `json:"parent_id,omitempty"`
	ProjectID string `json:"project_id"`
	Completed bool   `json:"completed"`
}

// IsTopLevel reports whether the task sits directly under its project.
func (t Task) IsTopLevel() bool {
	return t.ParentID == ""
}

// NormalizeText trims s and folds line breaks into single spaces so that a
// name or task text always occupies exactly one outline line.
func NormalizeText(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.TrimSpace(s)
}
