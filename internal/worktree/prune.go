package worktree

import (
	"context"

	"arbor/internal/errors"
)

// PruneOptions holds the per-invocation inputs of prune-merged.
type PruneOptions struct {
	Base         string   // override of the configured base branch
	Protected    []string // override of the configured protected set
	DeleteBranch bool     // also delete local branches
	Force        bool     // delete branches even with unpushed commits
	// Confirm is consulted with the candidate branches before any mutation.
	// A nil Confirm aborts. Protection applies only to this batch
	// operation, never to explicit single-target removal.
	Confirm func(branches []string) bool
}

// PruneResult reports the outcome for one pruned branch.
type PruneResult struct {
	Branch          string
	Path            string // empty when the branch had no worktree
	WorktreeRemoved bool
	BranchDeleted   bool
	Err             error
}

// PruneMerged removes the worktrees of branches fully merged into the
// base. The current branch and the protected set are never candidates.
// Branch deletion additionally refuses branches with unpushed commits
// unless forced. Per-branch failures do not abort the batch.
func (o *Orchestrator) PruneMerged(ctx context.Context, opts PruneOptions) ([]PruneResult, error) {
	handle, err := o.acquireLock()
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	log := o.opLogger("prune-merged")

	log.Info("Fetching from origin")
	if err := o.gw.FetchOrigin(ctx, o.repoRoot); err != nil {
		return nil, err
	}

	base := o.resolveBase(ctx, opts.Base)

	protected := opts.Protected
	if protected == nil {
		protected = o.cfg.Prune.Protected
	}
	protectedSet := make(map[string]struct{}, len(protected))
	for _, branch := range protected {
		protectedSet[branch] = struct{}{}
	}

	merged, err := o.gw.MergedBranches(ctx, o.repoRoot, base)
	if err != nil {
		return nil, err
	}
	current := o.gw.CurrentBranch(ctx, o.repoRoot)

	var candidates []string
	for _, branch := range merged {
		if branch == current {
			continue
		}
		if _, ok := protectedSet[branch]; ok {
			continue
		}
		candidates = append(candidates, branch)
	}

	if len(candidates) == 0 {
		log.Info("No branches to prune")
		return nil, nil
	}

	if opts.Confirm == nil || !opts.Confirm(candidates) {
		return nil, errors.ErrOperationAborted
	}

	deleteBranch := opts.DeleteBranch || o.cfg.Prune.DeleteBranchWithWorktree

	var results []PruneResult
	for _, branch := range candidates {
		result := o.pruneOne(ctx, branch, deleteBranch, opts.Force)
		results = append(results, result)

		entry := log.WithField("branch", branch)
		if result.Err != nil {
			entry.WithError(result.Err).Warn("Prune failed")
		} else {
			entry.Info("Pruned")
		}
	}
	return results, nil
}

// pruneOne removes one merged branch's worktree and optionally the branch
// itself. The unpushed-commit count is taken before the worktree goes
// away, since the probe needs a working directory.
func (o *Orchestrator) pruneOne(ctx context.Context, branch string, deleteBranch, force bool) PruneResult {
	result := PruneResult{Branch: branch}

	path, err := o.gw.WorktreePathForBranch(ctx, o.repoRoot, branch)
	if err != nil {
		result.Err = err
		return result
	}
	result.Path = path

	unpushed := 0
	if deleteBranch && !force {
		probeDir := path
		if probeDir == "" {
			probeDir = o.repoRoot
		}
		unpushed, err = o.gw.UnpushedCommits(ctx, probeDir, branch)
		if err != nil {
			result.Err = err
			return result
		}
	}

	if path != "" {
		if err := o.gw.RemoveWorktree(ctx, o.repoRoot, path, true); err != nil {
			result.Err = err
			return result
		}
		result.WorktreeRemoved = true
	}

	if deleteBranch {
		if unpushed > 0 {
			result.Err = errors.UnpushedCommits(branch, unpushed)
			return result
		}
		if err := o.gw.DeleteBranch(ctx, o.repoRoot, branch, force); err != nil {
			result.Err = err
			return result
		}
		result.BranchDeleted = true
	}

	return result
}
