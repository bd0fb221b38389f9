// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/mark3labs/mindtask/internal/logger"
	"github.com/mark3labs/mindtask/internal/theme"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for mindtask.
type Config struct {
	DataDir   string `mapstructure:"data_dir" yaml:"data_dir"`
	Workspace string `mapstructure:"workspace" yaml:"workspace"`
	Theme     string `mapstructure:"theme" yaml:"theme"`
	Persist   bool   `mapstructure:"persist" yaml:"persist"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFile   string `mapstructure:"log_file" yaml:"log_file"`
	MCPAddr   string `mapstructure:"mcp_addr" yaml:"mcp_addr"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		DataDir:   ".mindtask",
		Workspace: "default",
		Theme:     theme.DefaultName,
		Persist:   true,
		LogLevel:  "info",
		MCPAddr:   "127.0.0.1:0",
	}
}

var keys = []string{"data_dir", "workspace", "theme", "persist", "log_level", "log_file", "mcp_addr"}

// Load loads configuration with full precedence:
// CLI flags (applied by the caller) > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("mindtask")

	def := Default()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("workspace", def.Workspace)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("persist", def.Persist)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("mcp_addr", def.MCPAddr)

	// Setup ENV binding with MINDTASK_ prefix
	v.SetEnvPrefix("MINDTASK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better bool parsing
	for _, key := range keys {
		if err := v.BindEnv(key, "MINDTASK_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		logger.Debug("Loaded global config from %s", globalPath)
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		// Need to set config file explicitly for merge
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
		logger.Debug("Merged project config from %s", projectPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the rest of the program
// cannot work with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	// Workspace names become NATS subject tokens.
	if !slug.IsSlug(c.Workspace) {
		return fmt.Errorf("invalid workspace %q: use lowercase letters, digits and dashes", c.Workspace)
	}
	if _, ok := theme.Lookup(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", c.Theme, strings.Join(theme.Names(), ", "))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/mindtask/mindtask.yml or $XDG_CONFIG_HOME/mindtask/mindtask.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mindtask", "mindtask.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mindtask", "mindtask.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "mindtask.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
