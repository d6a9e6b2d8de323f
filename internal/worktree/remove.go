package worktree

import (
	"context"

	"arbor/internal/errors"
)

// RemoveOptions holds the per-invocation inputs of the rm operation.
type RemoveOptions struct {
	Branch       string
	DeleteBranch bool
	Force        bool // force worktree removal and branch deletion
	// Confirm is consulted with the worktree path before any mutation.
	// A nil Confirm aborts.
	Confirm func(path string) bool
}

// RemoveResult reports a finished remove operation.
type RemoveResult struct {
	Branch          string
	Path            string
	WorktreeRemoved bool
	BranchDeleted   bool
}

// Remove deletes the worktree bound to an explicitly named branch.
// Explicit naming overrides the protected set used by prune-merged.
// Branch deletion refuses unpushed commits unless forced.
func (o *Orchestrator) Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	handle, err := o.acquireLock()
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	log := o.opLogger("rm")

	branch := o.applyAutoPrefix(opts.Branch)

	path, err := o.gw.WorktreePathForBranch(ctx, o.repoRoot, branch)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.WorktreeNotFound(branch)
	}

	if opts.Confirm == nil || !opts.Confirm(path) {
		return nil, errors.ErrOperationAborted
	}

	// Probe unpushed work before the worktree directory goes away.
	unpushed := 0
	if opts.DeleteBranch && !opts.Force {
		unpushed, err = o.gw.UnpushedCommits(ctx, path, branch)
		if err != nil {
			return nil, err
		}
	}

	log.WithFields(map[string]interface{}{"branch": branch, "path": path}).Info("Removing worktree")
	if err := o.gw.RemoveWorktree(ctx, o.repoRoot, path, opts.Force); err != nil {
		return nil, err
	}

	result := &RemoveResult{Branch: branch, Path: path, WorktreeRemoved: true}

	if opts.DeleteBranch {
		if unpushed > 0 {
			return result, errors.UnpushedCommits(branch, unpushed)
		}
		if err := o.gw.DeleteBranch(ctx, o.repoRoot, branch, opts.Force); err != nil {
			return result, err
		}
		result.BranchDeleted = true
		log.WithField("branch", branch).Info("Deleted branch")
	}

	return result, nil
}
