// Package config loads and validates the plaindex workspace configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-workspace configuration file.
const ConfigFileName = ".plaindex.yaml"

// DataDirName is the per-workspace data directory (lock file, logs).
const DataDirName = ".plaindex"

// Config represents the complete plaindex configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Roots   []string      `yaml:"roots" json:"roots"`
	Docs    DocsConfig    `yaml:"docs" json:"docs"`
	Exclude ExcludeConfig `yaml:"exclude" json:"exclude"`
	Watch   WatchConfig   `yaml:"watch" json:"watch"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// DocsConfig configures which files count as plain documents.
type DocsConfig struct {
	// Extension is the document extension, dot included.
	Extension string `yaml:"extension" json:"extension"`
}

// ExcludeConfig configures directory exclusion during discovery.
type ExcludeConfig struct {
	// Dirs are directory names excluded by exact match.
	Dirs []string `yaml:"dirs" json:"dirs"`
	// Marker excludes any directory whose name starts with it.
	Marker string `yaml:"marker" json:"marker"`
}

// WatchConfig configures file-change handling.
type WatchConfig struct {
	// Debounce is the quiet period before a changed document is
	// re-indexed (e.g. "200ms"). Bursts per path coalesce into one update.
	Debounce string `yaml:"debounce" json:"debounce"`
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
}

// defaultExcludeDirs are always reasonable to skip in a documentation tree.
var defaultExcludeDirs = []string{
	"node_modules",
	"vendor",
	"dist",
	"build",
	"target",
}

// NewConfig creates a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Roots:   []string{"."},
		Docs: DocsConfig{
			Extension: ".plain",
		},
		Exclude: ExcludeConfig{
			Dirs:   defaultExcludeDirs,
			Marker: ".",
		},
		Watch: WatchConfig{
			Debounce: "200ms",
		},
		Server: ServerConfig{
			Transport: "stdio",
			LogLevel:  "info",
		},
	}
}

// Load reads configuration from the workspace root, merging the config
// file (if present) over defaults. A missing file is not an error.
func Load(root string) (*Config, error) {
	cfg := NewConfig()

	path := filepath.Join(root, ConfigFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return fmt.Errorf("config: at least one root directory is required")
	}
	if c.Docs.Extension == "" || c.Docs.Extension[0] != '.' {
		return fmt.Errorf("config: docs.extension must start with a dot, got %q", c.Docs.Extension)
	}
	if _, err := c.DebounceWindow(); err != nil {
		return fmt.Errorf("config: invalid watch.debounce: %w", err)
	}
	switch c.Server.Transport {
	case "", "stdio":
	default:
		return fmt.Errorf("config: unknown server.transport %q (supported: stdio)", c.Server.Transport)
	}
	return nil
}

// DebounceWindow parses the configured debounce duration.
func (c *Config) DebounceWindow() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 200 * time.Millisecond, nil
	}
	return time.ParseDuration(c.Watch.Debounce)
}

// AbsoluteRoots resolves the configured roots against the workspace root.
func (c *Config) AbsoluteRoots(workspaceRoot string) []string {
	roots := make([]string, 0, len(c.Roots))
	for _, r := range c.Roots {
		if filepath.IsAbs(r) {
			roots = append(roots, filepath.Clean(r))
		} else {
			roots = append(roots, filepath.Join(workspaceRoot, r))
		}
	}
	return roots
}

// Save writes the configuration to the workspace root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(root, ConfigFileName), data, 0o644)
}

// FindProjectRoot walks upward from start looking for a workspace marker:
// a .plaindex.yaml file or a .git directory. Falls back to the start
// directory resolved to an absolute path.
func FindProjectRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}
