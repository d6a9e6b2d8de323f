// Package worktree implements the lifecycle orchestration of git
// worktrees: creation at templated paths, status aggregation, safe
// synchronization against the base branch, and safe pruning. Every
// mutating operation serializes on the repository's advisory lock and
// performs at most one network refresh.
package worktree

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"arbor/internal/config"
	"arbor/internal/git"
	"arbor/internal/hooks"
	"arbor/internal/lazy"
	"arbor/internal/lock"
	"arbor/internal/logger"
	"arbor/internal/template"
	"arbor/internal/xdg"
)

// Gateway is the subset of git operations the orchestrator depends on.
// The concrete implementation lives in internal/git.
type Gateway interface {
	Version(ctx context.Context) (string, error)
	IsRepository(path string) bool
	FetchOrigin(ctx context.Context, repoRoot string) error
	RefExists(ctx context.Context, repoRoot, name string) bool
	DefaultBranch(ctx context.Context, repoRoot string) string
	ListWorktrees(ctx context.Context, repoRoot string) ([]git.WorktreeInfo, error)
	WorktreePathForBranch(ctx context.Context, repoRoot, branch string) (string, error)
	IsDirty(ctx context.Context, path string) (bool, error)
	UpstreamBranch(ctx context.Context, path string) string
	AheadBehind(ctx context.Context, path string) (ahead, behind int, err error)
	BehindBase(ctx context.Context, path, base string) (int, error)
	UnpushedCommits(ctx context.Context, path, branch string) (int, error)
	ShortSHA(ctx context.Context, path string) (string, error)
	CurrentBranch(ctx context.Context, repoRoot string) string
	MergedBranches(ctx context.Context, repoRoot, base string) ([]string, error)
	CreateWorktree(ctx context.Context, repoRoot, path, branch, source string, createBranch bool) error
	RemoveWorktree(ctx context.Context, repoRoot, path string, force bool) error
	PruneWorktrees(ctx context.Context, repoRoot string) error
	DeleteBranch(ctx context.Context, repoRoot, branch string, force bool) error
	SetUpstream(ctx context.Context, path, branch, upstream string) error
	UpdateWithStrategy(ctx context.Context, path, base, strategy string) error
	StashPush(ctx context.Context, path, message string) error
	StashPop(ctx context.Context, path string) error
}

// Orchestrator composes the gateway, template resolver, advisory lock and
// hook runner into the top-level worktree operations.
type Orchestrator struct {
	gw        Gateway
	cfg       *config.Config
	repoRoot  string
	commonDir string

	// defaultBranch memoizes remote default-branch detection; it costs a
	// git invocation and cannot change mid-operation.
	defaultBranch *lazy.Lazy[string]

	// Hook directories, overridable for tests. Defaults derive from the
	// local and global config locations.
	LocalHookDir  string
	GlobalHookDir string
}

// New creates an orchestrator for one repository. repoRoot is the main
// repository root and commonDir its common git directory (the lock key).
func New(gw Gateway, cfg *config.Config, repoRoot, commonDir string) *Orchestrator {
	o := &Orchestrator{
		gw:        gw,
		cfg:       cfg,
		repoRoot:  repoRoot,
		commonDir: commonDir,
	}

	o.defaultBranch = lazy.New(func(ctx context.Context) (string, error) {
		return gw.DefaultBranch(ctx, repoRoot), nil
	})

	o.LocalHookDir = filepath.Join(repoRoot, ".arbor", cfg.Hooks.PostCreateDir)
	if configDir, err := xdg.ConfigDir(); err == nil {
		o.GlobalHookDir = filepath.Join(configDir, cfg.Hooks.PostCreateDir)
	}

	return o
}

// RepoRoot returns the main repository root this orchestrator operates on.
func (o *Orchestrator) RepoRoot() string {
	return o.repoRoot
}

// Config returns the merged configuration in effect.
func (o *Orchestrator) Config() *config.Config {
	return o.cfg
}

// acquireLock serializes mutating operations on this repository. The
// returned handle must be released on every exit path.
func (o *Orchestrator) acquireLock() (*lock.Handle, error) {
	return lock.Acquire(o.commonDir)
}

// opLogger returns a logger carrying the operation name and a fresh
// operation id.
func (o *Orchestrator) opLogger(op string) *logrus.Entry {
	return logger.WithFields(logger.Fields{
		"op":    op,
		"op_id": xid.New().String(),
		"repo":  filepath.Base(o.repoRoot),
	})
}

// applyAutoPrefix prepends the configured branch prefix unless the name
// already carries it.
func (o *Orchestrator) applyAutoPrefix(branch string) string {
	prefix := o.cfg.Branches.AutoPrefix
	if prefix != "" && !strings.HasPrefix(branch, prefix) {
		return prefix + branch
	}
	return branch
}

// resolveBase returns the configured base branch, replacing the stock
// origin/main default with the remote's detected main line.
func (o *Orchestrator) resolveBase(ctx context.Context, override string) string {
	base := override
	if base == "" {
		base = o.cfg.Update.Base
	}
	if base == "origin/main" {
		base, _ = o.defaultBranch.Get(ctx)
	}
	return base
}

// hookRunner builds the post-create hook runner for this repository.
func (o *Orchestrator) hookRunner() *hooks.Runner {
	return hooks.NewRunner(o.LocalHookDir, o.GlobalHookDir, o.cfg.Hooks)
}

// worktreeRoot resolves the configured worktree root template.
func (o *Orchestrator) worktreeRoot() (string, error) {
	return template.ResolveRoot(o.repoRoot, o.cfg.Paths.WorktreeRoot)
}
