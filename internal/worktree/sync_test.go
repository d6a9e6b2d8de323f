package worktree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"arbor/internal/errors"
	"arbor/internal/git"
)

func TestPullMainUpdatesCleanWorktrees(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	worktrees := []git.WorktreeInfo{
		{Path: o.repoRoot, Branch: "main", Bare: true},
		{Path: "/wt/feature-a", Branch: "feature-a"},
		{Path: "/wt/feature-b", Branch: "feature-b"},
	}

	gw.On("FetchOrigin", mock.Anything, o.repoRoot).Return(nil)
	gw.On("DefaultBranch", mock.Anything, o.repoRoot).Return("origin/main")
	gw.On("ListWorktrees", mock.Anything, o.repoRoot).Return(worktrees, nil)
	gw.On("IsDirty", mock.Anything, mock.Anything).Return(false, nil)
	gw.On("UpdateWithStrategy", mock.Anything, "/wt/feature-a", "origin/main", "rebase").Return(nil)
	gw.On("UpdateWithStrategy", mock.Anything, "/wt/feature-b", "origin/main", "rebase").Return(nil)

	results, err := o.PullMain(ctx, SyncOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2, "bare entries are not synced")
	for _, r := range results {
		require.Equal(t, SyncUpdated, r.Action)
		require.NoError(t, r.Err)
	}
	gw.AssertExpectations(t)
}

func TestPullMainSkipsDirtyWithoutAutoStash(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	gw.On("FetchOrigin", mock.Anything, o.repoRoot).Return(nil)
	gw.On("DefaultBranch", mock.Anything, o.repoRoot).Return("origin/main")
	gw.On("ListWorktrees", mock.Anything, o.repoRoot).
		Return([]git.WorktreeInfo{{Path: "/wt/dirty", Branch: "dirty"}}, nil)
	gw.On("IsDirty", mock.Anything, "/wt/dirty").Return(true, nil)

	results, err := o.PullMain(ctx, SyncOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, SyncSkippedDirty, results[0].Action)
	require.True(t, errors.HasCode(results[0].Err, errors.ErrSkippedDirty))
	gw.AssertNotCalled(t, "UpdateWithStrategy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "StashPush", mock.Anything, mock.Anything, mock.Anything)
}

func TestPullMainAutoStashRoundTrip(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	gw.On("FetchOrigin", mock.Anything, o.repoRoot).Return(nil)
	gw.On("DefaultBranch", mock.Anything, o.repoRoot).Return("origin/main")
	gw.On("ListWorktrees", mock.Anything, o.repoRoot).
		Return([]git.WorktreeInfo{{Path: "/wt/dirty", Branch: "dirty"}}, nil)
	gw.On("IsDirty", mock.Anything, "/wt/dirty").Return(true, nil)
	gw.On("StashPush", mock.Anything, "/wt/dirty", mock.MatchedBy(func(msg string) bool {
		return len(msg) > len("arbor-autostash-")
	})).Return(nil)
	gw.On("UpdateWithStrategy", mock.Anything, "/wt/dirty", "origin/main", "rebase").Return(nil)
	gw.On("StashPop", mock.Anything, "/wt/dirty").Return(nil)

	results, err := o.PullMain(ctx, SyncOptions{AutoStash: true})
	require.NoError(t, err)
	require.Equal(t, SyncUpdated, results[0].Action)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[0].StashErr)
	gw.AssertExpectations(t)
}

func TestPullMainConflictKeepsStash(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	conflict := errors.GitCommandFailed([]string{"rebase"}, "CONFLICT", nil)

	gw.On("FetchOrigin", mock.Anything, o.repoRoot).Return(nil)
	gw.On("DefaultBranch", mock.Anything, o.repoRoot).Return("origin/main")
	gw.On("ListWorktrees", mock.Anything, o.repoRoot).
		Return([]git.WorktreeInfo{{Path: "/wt/dirty", Branch: "dirty"}}, nil)
	gw.On("IsDirty", mock.Anything, "/wt/dirty").Return(true, nil)
	gw.On("StashPush", mock.Anything, "/wt/dirty", mock.Anything).Return(nil)
	gw.On("UpdateWithStrategy", mock.Anything, "/wt/dirty", "origin/main", "rebase").Return(conflict)

	results, err := o.PullMain(ctx, SyncOptions{AutoStash: true})
	require.NoError(t, err)
	require.Equal(t, SyncFailed, results[0].Action)
	require.True(t, errors.HasCode(results[0].Err, errors.ErrUpdateConflict))
	// The stash stays parked for manual recovery.
	gw.AssertNotCalled(t, "StashPop", mock.Anything, mock.Anything)
}

func TestPullMainStashPopConflictStillCountsAsUpdated(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	popErr := errors.GitCommandFailed([]string{"stash", "pop"}, "CONFLICT", nil)

	gw.On("FetchOrigin", mock.Anything, o.repoRoot).Return(nil)
	gw.On("DefaultBranch", mock.Anything, o.repoRoot).Return("origin/main")
	gw.On("ListWorktrees", mock.Anything, o.repoRoot).
		Return([]git.WorktreeInfo{{Path: "/wt/dirty", Branch: "dirty"}}, nil)
	gw.On("IsDirty", mock.Anything, "/wt/dirty").Return(true, nil)
	gw.On("StashPush", mock.Anything, "/wt/dirty", mock.Anything).Return(nil)
	gw.On("UpdateWithStrategy", mock.Anything, "/wt/dirty", "origin/main", "rebase").Return(nil)
	gw.On("StashPop", mock.Anything, "/wt/dirty").Return(popErr)

	results, err := o.PullMain(ctx, SyncOptions{AutoStash: true})
	require.NoError(t, err)
	require.Equal(t, SyncUpdated, results[0].Action)
	require.NoError(t, results[0].Err)
	require.True(t, errors.HasCode(results[0].StashErr, errors.ErrStashRestoreConflict))
}

func TestPullMainFailureDoesNotAbortBatch(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	gw.On("FetchOrigin", mock.Anything, o.repoRoot).Return(nil)
	gw.On("DefaultBranch", mock.Anything, o.repoRoot).Return("origin/main")
	gw.On("ListWorktrees", mock.Anything, o.repoRoot).Return([]git.WorktreeInfo{
		{Path: "/wt/bad", Branch: "bad"},
		{Path: "/wt/good", Branch: "good"},
	}, nil)
	gw.On("IsDirty", mock.Anything, mock.Anything).Return(false, nil)
	gw.On("UpdateWithStrategy", mock.Anything, "/wt/bad", "origin/main", "rebase").
		Return(errors.GitCommandFailed([]string{"rebase"}, "boom", nil))
	gw.On("UpdateWithStrategy", mock.Anything, "/wt/good", "origin/main", "rebase").Return(nil)

	results, err := o.PullMain(ctx, SyncOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, SyncFailed, results[0].Action)
	require.Equal(t, SyncUpdated, results[1].Action)
}

func TestPullMainStrategyAndBaseOverrides(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	gw.On("FetchOrigin", mock.Anything, o.repoRoot).Return(nil)
	gw.On("ListWorktrees", mock.Anything, o.repoRoot).
		Return([]git.WorktreeInfo{{Path: "/wt/f", Branch: "f"}}, nil)
	gw.On("IsDirty", mock.Anything, "/wt/f").Return(false, nil)
	gw.On("UpdateWithStrategy", mock.Anything, "/wt/f", "origin/release", "merge").Return(nil)

	results, err := o.PullMain(ctx, SyncOptions{Base: "origin/release", Strategy: "merge"})
	require.NoError(t, err)
	require.Equal(t, "merge", results[0].Strategy)
	gw.AssertExpectations(t)
	// An explicit base skips default-branch detection.
	gw.AssertNotCalled(t, "DefaultBranch", mock.Anything, mock.Anything)
}
