package worktree

import (
	"context"
	"os"
	"path/filepath"
	"sort"
)

// GCResult reports a garbage-collection pass.
type GCResult struct {
	EmptyDirsRemoved int
}

// GC reconciles the worktree registry against the filesystem: stale
// registry entries are pruned and empty directories under the worktree
// root that no longer back a live worktree are removed. Idempotent; a
// second run with no intervening change reconciles nothing.
func (o *Orchestrator) GC(ctx context.Context) (*GCResult, error) {
	handle, err := o.acquireLock()
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	log := o.opLogger("gc")

	log.Info("Pruning stale worktree entries")
	if err := o.gw.PruneWorktrees(ctx, o.repoRoot); err != nil {
		return nil, err
	}

	wtRoot, err := o.worktreeRoot()
	if err != nil {
		return nil, err
	}

	result := &GCResult{}

	if _, err := os.Stat(wtRoot); os.IsNotExist(err) {
		return result, nil
	}

	worktrees, err := o.gw.ListWorktrees(ctx, o.repoRoot)
	if err != nil {
		return nil, err
	}
	live := make(map[string]struct{}, len(worktrees))
	for _, wt := range worktrees {
		live[filepath.Clean(wt.Path)] = struct{}{}
	}

	removed, err := removeEmptyDirs(wtRoot, live)
	if err != nil {
		return nil, err
	}
	result.EmptyDirsRemoved = removed

	log.WithField("removed", removed).Info("Removed empty directories")
	return result, nil
}

// removeEmptyDirs deletes empty directories under root, deepest first, so
// that directories left empty by a child's removal are collected in the
// same pass. Live worktree paths and root itself are kept.
func removeEmptyDirs(root string, live map[string]struct{}) (int, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	removed := 0
	for _, dir := range dirs {
		if _, ok := live[filepath.Clean(dir)]; ok {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err == nil {
			removed++
		}
	}
	return removed, nil
}
