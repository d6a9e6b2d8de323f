// Package config loads arbor configuration with the precedence
// defaults < global file < local file < CLI flags.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"arbor/internal/errors"
	"arbor/internal/xdg"
)

// Config is the fully merged arbor configuration. It is treated as an
// immutable input for the duration of one operation.
type Config struct {
	Paths    PathsConfig    `toml:"paths"`
	Branches BranchesConfig `toml:"branches"`
	Hooks    HooksConfig    `toml:"hooks"`
	Update   UpdateConfig   `toml:"update"`
	Prune    PruneConfig    `toml:"prune"`
	VSCode   VSCodeConfig   `toml:"vscode"`
	UI       UIConfig       `toml:"ui"`
}

type PathsConfig struct {
	// WorktreeRoot is itself a template; it may reference $REPO_ROOT and
	// $REPO_NAME. Empty means the default sibling directory.
	WorktreeRoot         string `toml:"worktree_root"`
	WorktreePathTemplate string `toml:"worktree_path_template"`
}

type BranchesConfig struct {
	AutoPrefix string `toml:"auto_prefix"`
}

type HooksConfig struct {
	PostCreateDir   string `toml:"post_create_dir"`
	ContinueOnError bool   `toml:"continue_on_error"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

type UpdateConfig struct {
	Base      string `toml:"base"`
	Strategy  string `toml:"strategy"`
	AutoStash bool   `toml:"auto_stash"`
}

type PruneConfig struct {
	Protected                []string `toml:"protected"`
	DeleteBranchWithWorktree bool     `toml:"delete_branch_with_worktree"`
}

type VSCodeConfig struct {
	CreateSettings bool `toml:"create_settings"`
	ColorBorders   bool `toml:"color_borders"`
	CustomTitle    bool `toml:"custom_title"`
}

type UIConfig struct {
	JSONIndent int `toml:"json_indent"`
}

// Update strategies accepted by [update].strategy.
const (
	StrategyRebase = "rebase"
	StrategyMerge  = "merge"
	StrategyFFOnly = "ff-only"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			WorktreeRoot:         "",
			WorktreePathTemplate: "$WT_ROOT/$BRANCH_NAME",
		},
		Branches: BranchesConfig{
			AutoPrefix: "",
		},
		Hooks: HooksConfig{
			PostCreateDir:   filepath.Join("hooks", "post_create.d"),
			ContinueOnError: false,
			TimeoutSeconds:  300,
		},
		Update: UpdateConfig{
			Base:      "origin/main",
			Strategy:  StrategyRebase,
			AutoStash: false,
		},
		Prune: PruneConfig{
			Protected:                []string{"main", "master", "develop"},
			DeleteBranchWithWorktree: false,
		},
		VSCode: VSCodeConfig{
			CreateSettings: false,
			ColorBorders:   true,
			CustomTitle:    true,
		},
		UI: UIConfig{
			JSONIndent: 2,
		},
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	configDir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LocalPath returns the path to the repo-local config file.
func LocalPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".arbor", "config.toml")
}

// Load returns the merged configuration for a repository. repoRoot may be
// empty when run outside a repository, in which case only defaults and the
// global file apply.
func Load(repoRoot string) (*Config, error) {
	cfg := Default()

	globalPath, err := GlobalPath()
	if err == nil {
		if err := mergeFile(cfg, globalPath); err != nil {
			return nil, err
		}
	}

	if repoRoot != "" {
		if err := mergeFile(cfg, LocalPath(repoRoot)); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile unmarshals path on top of cfg. Keys absent from the file keep
// their current values, which gives the layered precedence for free.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.ConfigParseError(path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return errors.ConfigParseError(path, err)
	}
	return nil
}

// Validate checks the merged configuration for values the orchestrator
// cannot work with.
func (c *Config) Validate() error {
	switch c.Update.Strategy {
	case StrategyRebase, StrategyMerge, StrategyFFOnly:
	default:
		return errors.ConfigValidationError("update.strategy",
			"must be one of rebase, merge, ff-only")
	}

	if c.Hooks.TimeoutSeconds <= 0 {
		return errors.ConfigValidationError("hooks.timeout_seconds", "must be positive")
	}

	if c.Paths.WorktreePathTemplate == "" {
		return errors.ConfigValidationError("paths.worktree_path_template", "must not be empty")
	}

	if c.UI.JSONIndent < 0 {
		return errors.ConfigValidationError("ui.json_indent", "must not be negative")
	}

	return nil
}
