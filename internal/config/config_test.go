package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "$WT_ROOT/$BRANCH_NAME", cfg.Paths.WorktreePathTemplate)
	assert.Empty(t, cfg.Paths.WorktreeRoot)
	assert.Empty(t, cfg.Branches.AutoPrefix)
	assert.Equal(t, 300, cfg.Hooks.TimeoutSeconds)
	assert.False(t, cfg.Hooks.ContinueOnError)
	assert.Equal(t, "origin/main", cfg.Update.Base)
	assert.Equal(t, StrategyRebase, cfg.Update.Strategy)
	assert.Equal(t, []string{"main", "master", "develop"}, cfg.Prune.Protected)
	assert.False(t, cfg.Prune.DeleteBranchWithWorktree)
	assert.False(t, cfg.VSCode.CreateSettings)
	assert.Equal(t, 2, cfg.UI.JSONIndent)

	require.NoError(t, cfg.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	globalDir := filepath.Join(configHome, "arbor")
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	global := `
[update]
strategy = "merge"
auto_stash = true

[branches]
auto_prefix = "alice/"
`
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.toml"), []byte(global), 0644))

	repoRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repoRoot, ".arbor"), 0755))
	local := `
[update]
strategy = "ff-only"
`
	require.NoError(t, os.WriteFile(LocalPath(repoRoot), []byte(local), 0644))

	cfg, err := Load(repoRoot)
	require.NoError(t, err)

	// local overrides global
	assert.Equal(t, StrategyFFOnly, cfg.Update.Strategy)
	// global overrides defaults for keys the local file does not set
	assert.True(t, cfg.Update.AutoStash)
	assert.Equal(t, "alice/", cfg.Branches.AutoPrefix)
	// untouched keys keep defaults
	assert.Equal(t, "origin/main", cfg.Update.Base)
	assert.Equal(t, 300, cfg.Hooks.TimeoutSeconds)
}

func TestLoadMissingFilesUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOutsideRepository(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	globalDir := filepath.Join(configHome, "arbor")
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.toml"),
		[]byte("[branches]\nauto_prefix = \"bob/\"\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "bob/", cfg.Branches.AutoPrefix)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	repoRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repoRoot, ".arbor"), 0755))
	require.NoError(t, os.WriteFile(LocalPath(repoRoot), []byte("[update\nbad"), 0644))

	_, err := Load(repoRoot)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrConfigParse))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad strategy", func(c *Config) { c.Update.Strategy = "yolo" }, "update.strategy"},
		{"zero timeout", func(c *Config) { c.Hooks.TimeoutSeconds = 0 }, "hooks.timeout_seconds"},
		{"empty template", func(c *Config) { c.Paths.WorktreePathTemplate = "" }, "paths.worktree_path_template"},
		{"negative indent", func(c *Config) { c.UI.JSONIndent = -1 }, "ui.json_indent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrConfigValidation))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
