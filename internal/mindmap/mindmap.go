// Package mindmap turns outline text into mermaid mindmap markup.
//
// The parser only reads outline text; it never sees the task tree. Any input
// yields markup: unknown indentation is dropped and a missing root marker
// yields a placeholder diagram.
package mindmap

import (
	"strings"
	"unicode"

	"github.com/mark3labs/mindtask/internal/outline"
)

// Kind is the header token declaring the diagram type.
const Kind = "mindmap"

// Placeholder root labels.
const (
	EmptyLabel     = "No tasks yet"
	NoProjectLabel = "No project selected"
)

// Outline indentation recognised for each node level.
const (
	parentIndent = 2
	childIndent  = 4
)

// Markup indentation per level: header at 0, root at 2, then +2 per level.
const levelIndent = "  "

// Node is one diagram node below the root.
type Node struct {
	Label    string `json:"label"`
	Children []Node `json:"children,omitempty"`
}

// Diagram is the parsed form of an outline.
type Diagram struct {
	Root  string `json:"root"`
	Nodes []Node `json:"nodes,omitempty"`

	// Placeholder is set when Root is one of the placeholder labels
	// produced for empty or rootless input.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Parse converts outline text to mermaid mindmap markup.
func Parse(text string) string {
	return Build(text).Markup()
}

// Build parses outline text into a Diagram.
func Build(text string) Diagram {
	if strings.TrimSpace(text) == "" {
		return Diagram{Root: EmptyLabel, Placeholder: true}
	}

	lines := strings.Split(text, "\n")
	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}

	head := strings.TrimRight(lines[first], " \t\r")
	if !strings.HasPrefix(head, "-") {
		return Diagram{Root: NoProjectLabel, Placeholder: true}
	}

	d := Diagram{Root: strings.TrimSpace(head[1:])}
	for _, line := range lines[first+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		label := outline.DecodeLabel(itemText(line))
		if label == "" {
			continue
		}

		switch indentOf(line) {
		case parentIndent:
			d.Nodes = append(d.Nodes, Node{Label: label})
		case childIndent:
			// A child before any parent has nowhere to attach.
			if len(d.Nodes) == 0 {
				continue
			}
			last := &d.Nodes[len(d.Nodes)-1]
			last.Children = append(last.Children, Node{Label: label})
		}
	}
	return d
}

// Markup renders the diagram in mermaid mindmap syntax.
func (d Diagram) Markup() string {
	var b strings.Builder
	b.WriteString(Kind)
	b.WriteByte('\n')
	b.WriteString(levelIndent)
	b.WriteString("root((")
	b.WriteString(d.Root)
	b.WriteString("))")
	if d.Placeholder {
		return b.String()
	}
	b.WriteByte('\n')

	for _, n := range d.Nodes {
		writeNode(&b, 2, n.Label)
		for _, c := range n.Children {
			writeNode(&b, 3, c.Label)
		}
	}
	return b.String()
}

// Count returns the number of nodes below the root.
func (d Diagram) Count() int {
	n := len(d.Nodes)
	for _, node := range d.Nodes {
		n += len(node.Children)
	}
	return n
}

// IsPlaceholder reports whether markup is one of the placeholder diagrams.
func IsPlaceholder(markup string) bool {
	return markup == Diagram{Root: EmptyLabel, Placeholder: true}.Markup() ||
		markup == Diagram{Root: NoProjectLabel, Placeholder: true}.Markup()
}

func writeNode(b *strings.Builder, depth int, label string) {
	b.WriteString(strings.Repeat(levelIndent, depth))
	b.WriteString(label)
	b.WriteByte('\n')
}

// indentOf counts leading whitespace characters.
func indentOf(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// itemText strips surrounding whitespace and one leading dash.
func itemText(line string) string {
	text := strings.TrimSpace(line)
	text = strings.TrimPrefix(text, "-")
	return strings.TrimSpace(text)
}
