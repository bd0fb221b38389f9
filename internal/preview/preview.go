// Package preview renders outlines and diagrams for the terminal.
package preview

import (
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/mark3labs/mindtask/internal/mindmap"
	"github.com/mark3labs/mindtask/internal/theme"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	maxWidth     = 120
)

// Width returns the terminal width of stdout, or 80 when it cannot be
// detected. Capped at 120 columns.
func Width() int {
	w := defaultWidth
	if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
		w = tw
	}
	return min(w, maxWidth)
}

// Outline renders outline text as markdown. Completed items come out
// struck through. Falls back to the raw text if rendering fails.
func Outline(text string, width int, th *theme.Theme) string {
	if width <= 0 || width > maxWidth {
		width = maxWidth
	}

	style := "light"
	if th != nil && th.IsDark {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSuffix(rendered, "\n")
}

// Tree draws a diagram as a terminal tree in the theme's colours.
func Tree(d mindmap.Diagram, th *theme.Theme) string {
	if th == nil {
		th = theme.Get(theme.DefaultName)
	}
	s := th.S()

	root := tree.Root(d.Root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.Enumerator).
		RootStyle(s.Root).
		ItemStyle(s.Parent)

	for _, n := range d.Nodes {
		if len(n.Children) == 0 {
			root.Child(n.Label)
			continue
		}
		sub := tree.Root(n.Label).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(s.Enumerator).
			ItemStyle(s.Child)
		for _, c := range n.Children {
			sub.Child(c.Label)
		}
		root.Child(sub)
	}
	return root.String()
}

// Diff returns a unified diff between two outlines, or "" when they are
// identical.
func Diff(before, after string) string {
	return udiff.Unified("before", "after", before, after)
}

// StyleDiff colours the added and removed lines of a unified diff.
func StyleDiff(diff string, th *theme.Theme) string {
	if diff == "" {
		return ""
	}
	if th == nil {
		th = theme.Get(theme.DefaultName)
	}
	added := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Secondary))
	removed := lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)).Strikethrough(true)
	header := th.S().Title

	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			lines[i] = header.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
