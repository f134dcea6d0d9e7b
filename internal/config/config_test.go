package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, []string{"."}, cfg.Roots)
	assert.Equal(t, ".plain", cfg.Docs.Extension)
	assert.Equal(t, ".", cfg.Exclude.Marker)
	assert.Contains(t, cfg.Exclude.Dirs, "node_modules")
	assert.Equal(t, "200ms", cfg.Watch.Debounce)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, ".plain", cfg.Docs.Extension)
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	// Given: a config file overriding some fields
	dir := t.TempDir()
	content := "version: 1\nroots:\n  - docs\ndocs:\n  extension: .txt\nwatch:\n  debounce: 500ms\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	// When: loading
	cfg, err := Load(dir)
	require.NoError(t, err)

	// Then: overridden fields win, untouched fields keep defaults
	assert.Equal(t, []string{"docs"}, cfg.Roots)
	assert.Equal(t, ".txt", cfg.Docs.Extension)
	assert.Equal(t, "stdio", cfg.Server.Transport)

	window, err := cfg.DebounceWindow()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, window)
}

func TestLoad_RejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{not yaml"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "no roots", mutate: func(c *Config) { c.Roots = nil }, wantErr: true},
		{name: "extension without dot", mutate: func(c *Config) { c.Docs.Extension = "plain" }, wantErr: true},
		{name: "empty extension", mutate: func(c *Config) { c.Docs.Extension = "" }, wantErr: true},
		{name: "bad debounce", mutate: func(c *Config) { c.Watch.Debounce = "soon" }, wantErr: true},
		{name: "unknown transport", mutate: func(c *Config) { c.Server.Transport = "tcp" }, wantErr: true},
		{name: "empty transport allowed", mutate: func(c *Config) { c.Server.Transport = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAbsoluteRoots(t *testing.T) {
	cfg := NewConfig()
	cfg.Roots = []string{"docs", "/abs/path"}

	roots := cfg.AbsoluteRoots("/workspace")

	assert.Equal(t, []string{"/workspace/docs", "/abs/path"}, roots)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Roots = []string{"docs"}
	cfg.Watch.Debounce = "300ms"

	require.NoError(t, cfg.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Roots, loaded.Roots)
	assert.Equal(t, cfg.Watch.Debounce, loaded.Watch.Debounce)
}

func TestFindProjectRoot(t *testing.T) {
	// Given: a workspace marked by a config file, with nesting below it
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("version: 1\nroots: [.]\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	// When: searching upward from the nested directory
	found, err := FindProjectRoot(nested)
	require.NoError(t, err)

	// Then: the marked directory wins
	resolved, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, expected, resolved)
}

func TestFindProjectRoot_FallsBackToStart(t *testing.T) {
	dir := t.TempDir()

	found, err := FindProjectRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, found)
}
