package theme

import (
	"encoding/json"
	"fmt"
)

type initDirective struct {
	Theme          string            `json:"theme"`
	ThemeVariables map[string]string `json:"themeVariables,omitempty"`
	SecurityLevel  string            `json:"securityLevel"`
	Mindmap        mindmapConfig     `json:"mindmap"`
}

type mindmapConfig struct {
	Padding     int  `json:"padding"`
	UseMaxWidth bool `json:"useMaxWidth"`
}

// Document prepends a mermaid init directive carrying the theme to markup,
// producing a self-contained diagram source for external renderers.
func Document(markup string, t *Theme) (string, error) {
	if t == nil {
		t = Get(DefaultName)
	}
	directive, err := json.Marshal(initDirective{
		Theme:          t.Mermaid.Theme,
		ThemeVariables: t.Mermaid.Variables,
		SecurityLevel:  "loose",
		Mindmap:        mindmapConfig{Padding: 20, UseMaxWidth: true},
	})
	if err != nil {
		return "", fmt.Errorf("encoding mermaid directive: %w", err)
	}
	return "%%{init: " + string(directive) + "}%%\n" + markup, nil
}
