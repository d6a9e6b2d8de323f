package worktree

import (
	"context"

	"arbor/internal/git"
)

// Status is the live projection of one worktree's state. It is recomputed
// on every query and never cached across operations.
type Status struct {
	Path       string `json:"path"`
	Branch     string `json:"branch"`
	SHA        string `json:"sha"`
	Dirty      bool   `json:"dirty"`
	Ahead      int    `json:"ahead"`
	Behind     int    `json:"behind"`
	BehindBase int    `json:"behind_main"`
	Locked     bool   `json:"locked"`
	Err        error  `json:"-"`
}

// List enumerates the repository's worktrees. Read-only; takes no lock.
func (o *Orchestrator) List(ctx context.Context) ([]git.WorktreeInfo, error) {
	return o.gw.ListWorktrees(ctx, o.repoRoot)
}

// StatusAll gathers detailed status for every non-bare worktree. One
// worktree's probe failure is recorded on its entry and does not abort
// the batch. Read-only; takes no lock.
func (o *Orchestrator) StatusAll(ctx context.Context) ([]Status, error) {
	log := o.opLogger("status")

	log.Info("Fetching from origin")
	if err := o.gw.FetchOrigin(ctx, o.repoRoot); err != nil {
		return nil, err
	}

	base := o.resolveBase(ctx, "")

	worktrees, err := o.gw.ListWorktrees(ctx, o.repoRoot)
	if err != nil {
		return nil, err
	}

	var statuses []Status
	for _, wt := range worktrees {
		if wt.Bare {
			continue
		}
		statuses = append(statuses, o.probe(ctx, wt, base))
	}
	return statuses, nil
}

// probe computes one worktree's status. A worktree with no upstream
// reports ahead/behind as zero by convention.
func (o *Orchestrator) probe(ctx context.Context, wt git.WorktreeInfo, base string) Status {
	status := Status{
		Path:   wt.Path,
		Branch: wt.Branch,
		Locked: wt.Locked,
	}

	sha, err := o.gw.ShortSHA(ctx, wt.Path)
	if err != nil {
		status.Err = err
		return status
	}
	status.SHA = sha

	dirty, err := o.gw.IsDirty(ctx, wt.Path)
	if err != nil {
		status.Err = err
		return status
	}
	status.Dirty = dirty

	ahead, behind, err := o.gw.AheadBehind(ctx, wt.Path)
	if err != nil {
		status.Err = err
		return status
	}
	status.Ahead = ahead
	status.Behind = behind

	behindBase, err := o.gw.BehindBase(ctx, wt.Path, base)
	if err != nil {
		// Detached or unborn heads cannot be compared against the base;
		// report zero rather than failing the whole row.
		behindBase = 0
	}
	status.BehindBase = behindBase

	return status
}

// Where returns the worktree path bound to a branch, applying the
// configured auto-prefix. Read-only; takes no lock.
func (o *Orchestrator) Where(ctx context.Context, branch string) (string, error) {
	gitBranch := o.applyAutoPrefix(branch)
	return o.gw.WorktreePathForBranch(ctx, o.repoRoot, gitBranch)
}
