package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mindtask/internal/logger"
	"github.com/mark3labs/mindtask/internal/theme"
)

// FileName is the name of the UI state file inside the data directory.
const FileName = "ui-state.json"

// UIState holds display preferences that carry across runs.
type UIState struct {
	Theme   string       `json:"theme,omitempty"`
	Sidebar SidebarState `json:"sidebar"`
}

// SidebarState holds sidebar visibility preference.
type SidebarState struct {
	Visible bool `json:"visible"`
}

// DefaultUIState returns the default UI state.
func DefaultUIState() *UIState {
	return &UIState{
		Theme: theme.DefaultName,
		Sidebar: SidebarState{
			Visible: true,
		},
	}
}

// ThemeOr returns the chosen theme, or fallback when none was saved or the
// saved one no longer exists.
func (s *UIState) ThemeOr(fallback string) string {
	if s == nil || s.Theme == "" {
		return fallback
	}
	if _, ok := theme.Lookup(s.Theme); !ok {
		return fallback
	}
	return s.Theme
}

// Load reads the UI state from <dataDir>/ui-state.json.
// Returns default state if the file doesn't exist or on error.
func Load(dataDir string) *UIState {
	path := filepath.Join(dataDir, FileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultUIState()
	}
	if err != nil {
		logger.Warn("Failed to read UI state file: %v", err)
		return DefaultUIState()
	}

	state := DefaultUIState()
	if err := json.Unmarshal(data, state); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return DefaultUIState()
	}

	return state
}

// Save writes the UI state to <dataDir>/ui-state.json.
// Creates the data directory if it doesn't exist.
func Save(dataDir string, state *UIState) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, FileName)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", path)
	return nil
}
