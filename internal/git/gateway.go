// Package git is the gateway to the version-control system. All repository
// mutations go through the git CLI; go-git is used only for cheap read-only
// probes. Command output is treated as an opaque text contract.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"arbor/internal/config"
	"arbor/internal/errors"
)

// Gateway executes git commands against a repository.
type Gateway struct{}

// New creates a new git gateway.
func New() *Gateway {
	return &Gateway{}
}

// WorktreeInfo describes one entry of `git worktree list --porcelain`.
type WorktreeInfo struct {
	Path     string `json:"path"`
	Branch   string `json:"branch"` // empty when detached or bare
	Head     string `json:"head"`
	Bare     bool   `json:"bare"`
	Detached bool   `json:"detached"`
	Locked   bool   `json:"locked"`
}

// run executes a git command in dir and returns trimmed stdout. A non-zero
// exit wraps the captured stderr; the diagnostic text is never parsed
// beyond the specific matches the callers do.
func (g *Gateway) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.GitCommandFailed(args, strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Version returns the git client version string.
func (g *Gateway) Version(ctx context.Context) (string, error) {
	return g.run(ctx, "", "--version")
}

// CommonDir returns the absolute path of the repository's common git
// directory. It works from both the main checkout and any worktree.
func (g *Gateway) CommonDir(ctx context.Context, startDir string) (string, error) {
	out, err := g.run(ctx, startDir, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", errors.RepoNotFound(err)
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(startDir, out)
	}
	return filepath.Clean(out), nil
}

// RepoRoot discovers the main repository root: the parent of the common
// git directory. When run from a worktree this is still the main root.
func (g *Gateway) RepoRoot(ctx context.Context, startDir string) (string, error) {
	commonDir, err := g.CommonDir(ctx, startDir)
	if err != nil {
		return "", err
	}
	return filepath.Dir(commonDir), nil
}

// IsRepository reports whether path holds a git repository or worktree.
func (g *Gateway) IsRepository(path string) bool {
	_, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// RefExists reports whether a local or remote ref resolves.
func (g *Gateway) RefExists(ctx context.Context, repoRoot, name string) bool {
	_, err := g.run(ctx, repoRoot, "rev-parse", "--verify", "--quiet", name)
	return err == nil
}

// DefaultBranch detects the remote's main line, preferring origin/main
// over origin/master. Falls back to origin/main when neither resolves.
func (g *Gateway) DefaultBranch(ctx context.Context, repoRoot string) string {
	for _, branch := range []string{"main", "master"} {
		ref := "origin/" + branch
		if g.RefExists(ctx, repoRoot, ref) {
			return ref
		}
	}
	return "origin/main"
}

// FetchOrigin fetches from origin with pruning. Mutating operations call
// this exactly once, before any per-worktree iteration.
func (g *Gateway) FetchOrigin(ctx context.Context, repoRoot string) error {
	_, err := g.run(ctx, repoRoot, "fetch", "origin", "--prune")
	return err
}

// ListWorktrees enumerates the repository's worktrees.
func (g *Gateway) ListWorktrees(ctx context.Context, repoRoot string) ([]WorktreeInfo, error) {
	out, err := g.run(ctx, repoRoot, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseWorktreeList(out), nil
}

// WorktreePathForBranch returns the worktree path bound to branch, or ""
// when the branch has no worktree.
func (g *Gateway) WorktreePathForBranch(ctx context.Context, repoRoot, branch string) (string, error) {
	worktrees, err := g.ListWorktrees(ctx, repoRoot)
	if err != nil {
		return "", err
	}
	for _, wt := range worktrees {
		if wt.Branch == branch {
			return wt.Path, nil
		}
	}
	return "", nil
}

// IsDirty reports whether a worktree has uncommitted changes.
func (g *Gateway) IsDirty(ctx context.Context, path string) (bool, error) {
	out, err := g.run(ctx, path, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// UpstreamBranch returns the worktree's remote-tracking branch, or "" when
// none is configured. A missing upstream is a normal condition, not an
// error.
func (g *Gateway) UpstreamBranch(ctx context.Context, path string) string {
	out, err := g.run(ctx, path, "rev-parse", "--abbrev-ref", "@{u}")
	if err != nil {
		return ""
	}
	return out
}

// AheadBehind counts commits ahead of and behind the upstream branch.
// Reported as (0, 0) when no upstream is configured.
func (g *Gateway) AheadBehind(ctx context.Context, path string) (ahead, behind int, err error) {
	upstream := g.UpstreamBranch(ctx, path)
	if upstream == "" {
		return 0, 0, nil
	}

	out, err := g.run(ctx, path, "rev-list", "--left-right", "--count", upstream+"...HEAD")
	if err != nil {
		return 0, 0, err
	}

	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, errors.NewWithDetails(errors.ErrGitCommand, "Unexpected rev-list output", out)
	}
	behind, _ = strconv.Atoi(fields[0])
	ahead, _ = strconv.Atoi(fields[1])
	return ahead, behind, nil
}

// BehindBase counts commits reachable from base but not from HEAD.
func (g *Gateway) BehindBase(ctx context.Context, path, base string) (int, error) {
	out, err := g.run(ctx, path, "rev-list", "--count", "HEAD.."+base)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(out)
	if convErr != nil {
		return 0, errors.NewWithDetails(errors.ErrGitCommand, "Unexpected rev-list output", out)
	}
	return n, nil
}

// UnpushedCommits counts commits on branch absent from its upstream, or 0
// when the branch has no upstream.
func (g *Gateway) UnpushedCommits(ctx context.Context, path, branch string) (int, error) {
	upstream := g.UpstreamBranch(ctx, path)
	if upstream == "" {
		return 0, nil
	}

	out, err := g.run(ctx, path, "rev-list", "--count", upstream+".."+branch)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(out)
	if convErr != nil {
		return 0, errors.NewWithDetails(errors.ErrGitCommand, "Unexpected rev-list output", out)
	}
	return n, nil
}

// ShortSHA returns the abbreviated commit hash of HEAD.
func (g *Gateway) ShortSHA(ctx context.Context, path string) (string, error) {
	return g.run(ctx, path, "rev-parse", "--short", "HEAD")
}

// CurrentBranch returns the checked-out branch of the main repository, or
// "" for a detached HEAD.
func (g *Gateway) CurrentBranch(ctx context.Context, repoRoot string) string {
	out, err := g.run(ctx, repoRoot, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil || out == "HEAD" {
		return ""
	}
	return out
}

// MergedBranches lists local branches fully merged into base.
func (g *Gateway) MergedBranches(ctx context.Context, repoRoot, base string) ([]string, error) {
	out, err := g.run(ctx, repoRoot, "branch", "--format=%(refname:short)", "--merged="+base)
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// CreateWorktree adds a worktree at path. When createBranch is set the
// branch is created from source; otherwise the existing branch is checked
// out. A branch bound to another worktree is a non-retriable error.
func (g *Gateway) CreateWorktree(ctx context.Context, repoRoot, path, branch, source string, createBranch bool) error {
	var args []string
	if createBranch {
		args = []string{"worktree", "add", "-b", branch, path, source}
	} else {
		args = []string{"worktree", "add", path, branch}
	}

	if _, err := g.run(ctx, repoRoot, args...); err != nil {
		if isAlreadyCheckedOut(err) {
			return errors.BranchAlreadyCheckedOut(branch, path)
		}
		return err
	}
	return nil
}

// isAlreadyCheckedOut matches git's diagnostic for a branch bound to
// another worktree. This is the one place gateway stderr is inspected.
func isAlreadyCheckedOut(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "already checked out") ||
		strings.Contains(msg, "already used by worktree")
}

// RemoveWorktree removes a worktree.
func (g *Gateway) RemoveWorktree(ctx context.Context, repoRoot, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	_, err := g.run(ctx, repoRoot, args...)
	return err
}

// PruneWorktrees drops registry entries whose directory no longer exists.
func (g *Gateway) PruneWorktrees(ctx context.Context, repoRoot string) error {
	_, err := g.run(ctx, repoRoot, "worktree", "prune")
	return err
}

// DeleteBranch deletes a local branch (-D when force is set).
func (g *Gateway) DeleteBranch(ctx context.Context, repoRoot, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := g.run(ctx, repoRoot, "branch", flag, branch)
	return err
}

// SetUpstream sets the remote-tracking branch for a local branch.
func (g *Gateway) SetUpstream(ctx context.Context, path, branch, upstream string) error {
	_, err := g.run(ctx, path, "branch", "-u", upstream, branch)
	return err
}

// UpdateWithStrategy integrates base into the worktree at path. A conflict
// leaves git's native conflict state in place for the user to resolve.
func (g *Gateway) UpdateWithStrategy(ctx context.Context, path, base, strategy string) error {
	args, err := updateArgs(base, strategy)
	if err != nil {
		return err
	}
	_, err = g.run(ctx, path, args...)
	return err
}

// updateArgs maps an update strategy to its git invocation. ff-only is
// merge --ff-only; a divergent branch fails rather than falling back to a
// real merge.
func updateArgs(base, strategy string) ([]string, error) {
	switch strategy {
	case config.StrategyRebase:
		return []string{"rebase", base}, nil
	case config.StrategyMerge:
		return []string{"merge", "--no-edit", base}, nil
	case config.StrategyFFOnly:
		return []string{"merge", "--ff-only", base}, nil
	default:
		return nil, errors.NewWithDetails(errors.ErrInvalidInput, "Unknown update strategy", strategy)
	}
}

// StashPush stashes uncommitted changes, including untracked files.
func (g *Gateway) StashPush(ctx context.Context, path, message string) error {
	_, err := g.run(ctx, path, "stash", "push", "-u", "-m", message)
	return err
}

// StashPop restores the most recent stash entry.
func (g *Gateway) StashPop(ctx context.Context, path string) error {
	_, err := g.run(ctx, path, "stash", "pop")
	return err
}

// parseWorktreeList parses `git worktree list --porcelain` output.
func parseWorktreeList(output string) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current WorktreeInfo

	flush := func() {
		if current.Path != "" {
			worktrees = append(worktrees, current)
		}
		current = WorktreeInfo{}
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			flush()
			continue
		}

		switch {
		case strings.HasPrefix(line, "worktree "):
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "bare":
			current.Bare = true
		case line == "detached":
			current.Detached = true
		case line == "locked" || strings.HasPrefix(line, "locked "):
			current.Locked = true
		}
	}
	flush()

	return worktrees
}

// String implements fmt.Stringer for diagnostics.
func (w WorktreeInfo) String() string {
	branch := w.Branch
	if branch == "" {
		branch = "(detached)"
	}
	return fmt.Sprintf("%s [%s]", w.Path, branch)
}
