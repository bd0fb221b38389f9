package mindmap

import (
	"strings"
	"testing"

	"github.com/mark3labs/mindtask/internal/model"
	"github.com/mark3labs/mindtask/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	emptyMarkup     = "mindmap\n  root((No tasks yet))"
	noProjectMarkup = "mindmap\n  root((No project selected))"
)

func TestParsePlaceholders(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", emptyMarkup},
		{"spaces", "   ", emptyMarkup},
		{"blank lines", "\n\n \t\n", emptyMarkup},
		{"missing root marker", "not a dash line\n  - x", noProjectMarkup},
		{"indented root", "  - Project\n  - x", noProjectMarkup},
		{"root is a bullet of another kind", "* Project", noProjectMarkup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsPlaceholder(got))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("root only", func(t *testing.T) {
		assert.Equal(t, "mindmap\n  root((Home))\n", Parse("- Home\n"))
	})

	t.Run("leading blank lines before root", func(t *testing.T) {
		assert.Equal(t, "mindmap\n  root((Home))\n", Parse("\n\n- Home"))
	})

	t.Run("two levels", func(t *testing.T) {
		input := "- Home\n  - Kitchen\n    - Dishes\n    - Floor\n  - Garden\n"
		want := "mindmap\n" +
			"  root((Home))\n" +
			"    Kitchen\n" +
			"      Dishes\n" +
			"      Floor\n" +
			"    Garden\n"
		assert.Equal(t, want, Parse(input))
	})

	t.Run("completed items are struck", func(t *testing.T) {
		got := Parse("- P\n  - ~~Buy milk~~\n")
		want := "mindmap\n  root((P))\n    " +
			"B\u0336u\u0336y\u0336 \u0336m\u0336i\u0336l\u0336k\u0336\n"
		assert.Equal(t, want, got)
	})

	t.Run("root label is not decoded", func(t *testing.T) {
		assert.Equal(t, "mindmap\n  root((~~Done~~))\n", Parse("- ~~Done~~"))
	})

	t.Run("odd indents are dropped without affecting siblings", func(t *testing.T) {
		input := "- P\n  - A\n   - three\n    - A1\n - one\n  - B\n      - six\n    - B1\n"
		want := "mindmap\n  root((P))\n    A\n      A1\n    B\n      B1\n"
		assert.Equal(t, want, Parse(input))
	})

	t.Run("child before any parent is dropped", func(t *testing.T) {
		assert.Equal(t, "mindmap\n  root((P))\n    A\n", Parse("- P\n    - orphan\n  - A\n"))
	})

	t.Run("empty labels are dropped", func(t *testing.T) {
		assert.Equal(t, "mindmap\n  root((P))\n    A\n", Parse("- P\n  -\n  - A\n  -   \n"))
	})

	t.Run("lines without a dash keep their text", func(t *testing.T) {
		assert.Equal(t, "mindmap\n  root((P))\n    loose\n", Parse("- P\n  loose\n"))
	})

	t.Run("crlf line endings", func(t *testing.T) {
		assert.Equal(t, "mindmap\n  root((P))\n    A\n      B\n", Parse("- P\r\n  - A\r\n    - B\r\n"))
	})

	t.Run("tabs count as one column", func(t *testing.T) {
		assert.Equal(t, "mindmap\n  root((P))\n    A\n", Parse("- P\n\t\t- A\n\t- dropped\n"))
	})
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"-",
		"- ",
		"--",
		"-\n-\n-",
		"- P\n~~",
		"- P\n  - ~~",
		"- P\n  - ~~~",
		"- P\n    -",
		"\x00\xff\xfe",
		"- \xff\n  - \xfe",
		strings.Repeat(" ", 4096) + "- x",
		"- P\n" + strings.Repeat("  - a\n    - b\n", 500),
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Parse(in) }, "input %q", in)
	}
}

func TestBuild(t *testing.T) {
	d := Build("- P\n  - A\n    - A1\n  - ~~B~~\n")
	assert.Equal(t, "P", d.Root)
	assert.False(t, d.Placeholder)
	require.Len(t, d.Nodes, 2)
	assert.Equal(t, "A", d.Nodes[0].Label)
	assert.Equal(t, []Node{{Label: "A1"}}, d.Nodes[0].Children)
	assert.Equal(t, outline.Strike("B"), d.Nodes[1].Label)
	assert.Equal(t, 3, d.Count())

	empty := Build("")
	assert.True(t, empty.Placeholder)
	assert.Equal(t, EmptyLabel, empty.Root)
	assert.Zero(t, empty.Count())
}

func TestRoundTrip(t *testing.T) {
	project := model.Project{ID: "p", Name: "Launch"}
	tasks := []model.Task{
		{ID: "1", Text: "Design", ProjectID: "p"},
		{ID: "2", Text: "Build", ProjectID: "p"},
		{ID: "3", Text: "Sketch", ProjectID: "p", ParentID: "1", Completed: true},
		{ID: "4", Text: "Review", ProjectID: "p", ParentID: "1"},
		{ID: "5", Text: "Ship it", ProjectID: "p", ParentID: "2"},
		{ID: "6", Text: "Celebrate", ProjectID: "p", Completed: true},
	}

	d := Build(outline.Serialize(project, tasks))
	assert.Equal(t, project.Name, d.Root)
	assert.Equal(t, len(tasks), d.Count())

	var labels []string
	for _, n := range d.Nodes {
		labels = append(labels, n.Label)
		for _, c := range n.Children {
			labels = append(labels, c.Label)
		}
	}
	assert.ElementsMatch(t, []string{
		"Design", outline.Strike("Sketch"), "Review",
		"Build", "Ship it",
		outline.Strike("Celebrate"),
	}, labels)
}

