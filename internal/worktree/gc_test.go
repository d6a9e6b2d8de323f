package worktree

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"arbor/internal/git"
)

func TestGCRemovesEmptyDirs(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	wtRoot := filepath.Dir(o.repoRoot) + "/repo-worktrees"
	live := filepath.Join(wtRoot, "feature")
	stale := filepath.Join(wtRoot, "old", "nested")
	require.NoError(t, os.MkdirAll(live, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(live, "f.txt"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(stale, 0755))

	gw.On("PruneWorktrees", mock.Anything, o.repoRoot).Return(nil)
	gw.On("ListWorktrees", mock.Anything, o.repoRoot).
		Return([]git.WorktreeInfo{{Path: live, Branch: "feature"}}, nil)

	result, err := o.GC(ctx)
	require.NoError(t, err)
	// nested and its emptied parent go in one pass
	require.Equal(t, 2, result.EmptyDirsRemoved)

	_, err = os.Stat(stale)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(live)
	require.NoError(t, err)
	_, err = os.Stat(wtRoot)
	require.NoError(t, err, "root itself is kept")
}

func TestGCKeepsLiveEmptyWorktreeDir(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	wtRoot := filepath.Dir(o.repoRoot) + "/repo-worktrees"
	// Registered but (transiently) empty on disk.
	live := filepath.Join(wtRoot, "feature")
	require.NoError(t, os.MkdirAll(live, 0755))

	gw.On("PruneWorktrees", mock.Anything, o.repoRoot).Return(nil)
	gw.On("ListWorktrees", mock.Anything, o.repoRoot).
		Return([]git.WorktreeInfo{{Path: live, Branch: "feature"}}, nil)

	result, err := o.GC(ctx)
	require.NoError(t, err)
	require.Zero(t, result.EmptyDirsRemoved)

	_, err = os.Stat(live)
	require.NoError(t, err)
}

func TestGCIdempotent(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	wtRoot := filepath.Dir(o.repoRoot) + "/repo-worktrees"
	require.NoError(t, os.MkdirAll(filepath.Join(wtRoot, "stale"), 0755))

	gw.On("PruneWorktrees", mock.Anything, o.repoRoot).Return(nil)
	gw.On("ListWorktrees", mock.Anything, o.repoRoot).Return([]git.WorktreeInfo{}, nil)

	first, err := o.GC(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, first.EmptyDirsRemoved)

	second, err := o.GC(ctx)
	require.NoError(t, err)
	require.Zero(t, second.EmptyDirsRemoved)
}

func TestGCMissingWorktreeRoot(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	gw.On("PruneWorktrees", mock.Anything, o.repoRoot).Return(nil)

	result, err := o.GC(ctx)
	require.NoError(t, err)
	require.Zero(t, result.EmptyDirsRemoved)
	gw.AssertNotCalled(t, "ListWorktrees", mock.Anything, mock.Anything)
}
