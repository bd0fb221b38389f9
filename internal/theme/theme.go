// Package theme defines the colour themes applied to rendered diagrams and
// terminal previews. Themes are passed explicitly to whatever renders; the
// outline and mindmap packages never see them.
package theme

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultName is the theme used when none is configured.
const DefaultName = "light"

// Theme defines the palette for one look.
type Theme struct {
	Name   string
	Label  string
	IsDark bool

	// Terminal colours (hex)
	Primary   string
	Secondary string
	FgBase    string
	FgMuted   string

	Mermaid Mermaid

	styles     *Styles
	stylesOnce sync.Once
}

// Mermaid is the renderer configuration emitted in a diagram's init directive.
type Mermaid struct {
	Theme     string            `json:"theme"`
	Variables map[string]string `json:"themeVariables"`
}

// Styles contains the pre-built lipgloss styles for terminal previews.
type Styles struct {
	Root       lipgloss.Style
	Parent     lipgloss.Style
	Child      lipgloss.Style
	Enumerator lipgloss.Style
	Title      lipgloss.Style
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	return &Styles{
		Root: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Parent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)),
		Child: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		Enumerator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)).
			PaddingRight(1),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)).
			Bold(true),
	}
}

const fontFamily = "system-ui, -apple-system, sans-serif"

func mermaidVars(bg, surface, text, accent string) map[string]string {
	return map[string]string{
		"fontFamily":          fontFamily,
		"fontSize":            "16px",
		"primaryColor":        surface,
		"primaryTextColor":    text,
		"primaryBorderColor":  accent,
		"lineColor":           accent,
		"textColor":           text,
		"mainBkg":             bg,
		"nodeBorder":          accent,
		"clusterBkg":          surface,
		"titleColor":          text,
		"edgeLabelBackground": surface,
	}
}

var registry = map[string]*Theme{
	"light": {
		Name:      "light",
		Label:     "Light Theme",
		Primary:   "#4f46e5",
		Secondary: "#059669",
		FgBase:    "#171717",
		FgMuted:   "#737373",
		Mermaid:   Mermaid{Theme: "neutral", Variables: mermaidVars("#ffffff", "#ffffff", "#171717", "#4f46e5")},
	},
	"dark": {
		Name:      "dark",
		Label:     "Dark Theme",
		IsDark:    true,
		Primary:   "#3b82f6",
		Secondary: "#10b981",
		FgBase:    "#f1f5f9",
		FgMuted:   "#94a3b8",
		Mermaid:   Mermaid{Theme: "dark", Variables: mermaidVars("#0f172a", "#1e293b", "#f1f5f9", "#3b82f6")},
	},
	"blue": {
		Name:      "blue",
		Label:     "Blue Theme",
		Primary:   "#2563eb",
		Secondary: "#0ea5e9",
		FgBase:    "#172554",
		FgMuted:   "#93c5fd",
		Mermaid:   Mermaid{Theme: "neutral", Variables: mermaidVars("#eff6ff", "#ffffff", "#172554", "#2563eb")},
	},
	"pink": {
		Name:      "pink",
		Label:     "Pastel Pink",
		Primary:   "#f472b6",
		Secondary: "#fb7185",
		FgBase:    "#831843",
		FgMuted:   "#f9a8d4",
		Mermaid:   Mermaid{Theme: "neutral", Variables: mermaidVars("#fdf2f8", "#ffffff", "#831843", "#f472b6")},
	},
}

// Lookup returns the named theme.
func Lookup(name string) (*Theme, bool) {
	t, ok := registry[name]
	return t, ok
}

// Get returns the named theme, falling back to the default theme.
func Get(name string) *Theme {
	if t, ok := registry[name]; ok {
		return t
	}
	return registry[DefaultName]
}

// Names lists the available themes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MermaidBase maps a DaisyUI theme name to the closest built-in mermaid theme.
func MermaidBase(daisy string) string {
	switch daisy {
	case "dark", "halloween", "forest", "black", "luxury", "dracula", "night", "coffee",
		"synthwave", "cyberpunk":
		return "dark"
	default:
		return "default"
	}
}
