package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points XDG_CONFIG_HOME and the working directory at a temp dir and
// clears MINDTASK_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range keys {
		t.Setenv("MINDTASK_"+strings.ToUpper(key), "")
		_ = os.Unsetenv("MINDTASK_" + strings.ToUpper(key))
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		want      string
	}{
		{
			name:      "with XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			want:      "/custom/config/mindtask/mindtask.yml",
		},
		{
			name:      "without XDG_CONFIG_HOME",
			xdgConfig: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)

			got := GlobalPath()
			if tt.want != "" {
				if got != tt.want {
					t.Errorf("GlobalPath() = %v, want %v", got, tt.want)
				}
				return
			}
			if !filepath.IsAbs(got) {
				t.Errorf("GlobalPath() should return absolute path, got %v", got)
			}
			if !strings.HasSuffix(got, filepath.Join(".config", "mindtask", "mindtask.yml")) {
				t.Errorf("GlobalPath() should end with .config/mindtask/mindtask.yml, got %v", got)
			}
		})
	}
}

func TestProjectPath(t *testing.T) {
	if got := ProjectPath(); got != "mindtask.yml" {
		t.Errorf("ProjectPath() = %v, want mindtask.yml", got)
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Error("Exists() = true, want false when no config files exist")
	}

	if err := WriteProject(Default()); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
	_ = os.Remove(ProjectPath())

	if err := WriteGlobal(Default()); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when global config exists")
	}
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := &Config{
		DataDir:   ".test",
		Workspace: "groceries",
		Theme:     "dark",
		Persist:   false,
		LogLevel:  "debug",
		LogFile:   "/tmp/test.log",
		MCPAddr:   "127.0.0.1:7777",
	}
	if err := WriteGlobal(cfg); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	data, err := os.ReadFile(GlobalPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	content := string(data)
	for _, field := range []string{
		"data_dir: .test",
		"workspace: groceries",
		"theme: dark",
		"persist: false",
		"log_level: debug",
		"log_file: /tmp/test.log",
		"mcp_addr: 127.0.0.1:7777",
	} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	global := Default()
	global.Theme = "dark"
	global.Workspace = "global"
	global.LogLevel = "warn"
	if err := WriteGlobal(global); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	if err := os.WriteFile(ProjectPath(), []byte("workspace: local\npersist: false\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}

	t.Setenv("MINDTASK_THEME", "pink")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Theme != "pink" {
		t.Errorf("env should win over files: Theme = %v", cfg.Theme)
	}
	if cfg.Workspace != "local" {
		t.Errorf("project config should win over global: Workspace = %v", cfg.Workspace)
	}
	if cfg.Persist {
		t.Error("project config should set Persist = false")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("global config should win over defaults: LogLevel = %v", cfg.LogLevel)
	}
	if cfg.DataDir != ".mindtask" {
		t.Errorf("default DataDir = %v, want .mindtask", cfg.DataDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"workspace with dots", func(c *Config) { c.Workspace = "a.b" }, true},
		{"workspace with spaces", func(c *Config) { c.Workspace = "my tasks" }, true},
		{"dashed workspace", func(c *Config) { c.Workspace = "my-tasks" }, false},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
