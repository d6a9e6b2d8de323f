package worktree

import (
	"context"

	"github.com/rs/xid"

	"arbor/internal/errors"
)

// SyncAction classifies the outcome for one worktree during pull-main.
type SyncAction string

const (
	SyncUpdated      SyncAction = "updated"
	SyncSkippedDirty SyncAction = "skipped-dirty"
	SyncFailed       SyncAction = "failed"
)

// SyncOptions holds the per-invocation inputs of pull-main.
type SyncOptions struct {
	Base      string // override of the configured base branch
	Strategy  string // override of the configured update strategy
	AutoStash bool   // stash dirty worktrees instead of skipping them
}

// SyncResult reports the outcome for one worktree. StashErr records a
// stash-restore conflict after an otherwise successful update; the update
// itself still counts as a success in that case.
type SyncResult struct {
	Path     string
	Branch   string
	Action   SyncAction
	Strategy string
	Err      error
	StashErr error
}

// PullMain updates every non-bare worktree from the base branch using the
// configured strategy. Per-worktree failures are recorded and do not
// abort the batch.
func (o *Orchestrator) PullMain(ctx context.Context, opts SyncOptions) ([]SyncResult, error) {
	handle, err := o.acquireLock()
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	log := o.opLogger("pull-main")

	log.Info("Fetching from origin")
	if err := o.gw.FetchOrigin(ctx, o.repoRoot); err != nil {
		return nil, err
	}

	base := o.resolveBase(ctx, opts.Base)
	strategy := opts.Strategy
	if strategy == "" {
		strategy = o.cfg.Update.Strategy
	}
	autoStash := opts.AutoStash || o.cfg.Update.AutoStash

	worktrees, err := o.gw.ListWorktrees(ctx, o.repoRoot)
	if err != nil {
		return nil, err
	}

	var results []SyncResult
	for _, wt := range worktrees {
		if wt.Bare {
			continue
		}
		result := o.syncOne(ctx, wt.Path, wt.Branch, base, strategy, autoStash)
		results = append(results, result)

		entry := log.WithFields(map[string]interface{}{"branch": result.Branch, "action": result.Action})
		if result.Err != nil {
			entry.WithError(result.Err).Warn("Worktree update failed")
		} else {
			entry.Debug("Worktree processed")
		}
	}
	return results, nil
}

// syncOne updates a single worktree. A conflicting update leaves git's
// native conflict state in place; any stash made beforehand is kept for
// manual recovery.
func (o *Orchestrator) syncOne(ctx context.Context, path, branch, base, strategy string, autoStash bool) SyncResult {
	result := SyncResult{Path: path, Branch: branch, Strategy: strategy}

	dirty, err := o.gw.IsDirty(ctx, path)
	if err != nil {
		result.Action = SyncFailed
		result.Err = err
		return result
	}

	if dirty && !autoStash {
		result.Action = SyncSkippedDirty
		result.Err = errors.SkippedDirty(branch)
		return result
	}

	stashed := false
	if dirty {
		if err := o.gw.StashPush(ctx, path, "arbor-autostash-"+xid.New().String()); err != nil {
			result.Action = SyncFailed
			result.Err = err
			return result
		}
		stashed = true
	}

	if err := o.gw.UpdateWithStrategy(ctx, path, base, strategy); err != nil {
		result.Action = SyncFailed
		result.Err = errors.UpdateConflict(branch, strategy, err)
		return result
	}
	result.Action = SyncUpdated

	if stashed {
		if err := o.gw.StashPop(ctx, path); err != nil {
			result.StashErr = errors.StashRestoreConflict(branch, err)
		}
	}

	return result
}
