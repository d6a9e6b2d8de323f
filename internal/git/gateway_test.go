package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/errors"
)

func TestParseWorktreeList(t *testing.T) {
	output := `worktree /home/user/project
HEAD 1111111111111111111111111111111111111111
branch refs/heads/main

worktree /home/user/project-worktrees/feature/login
HEAD 2222222222222222222222222222222222222222
branch refs/heads/feature/login
locked reason

worktree /home/user/project-worktrees/spike
HEAD 3333333333333333333333333333333333333333
detached
`

	worktrees := parseWorktreeList(output)
	require.Len(t, worktrees, 3)

	assert.Equal(t, "/home/user/project", worktrees[0].Path)
	assert.Equal(t, "main", worktrees[0].Branch)
	assert.Equal(t, "1111111111111111111111111111111111111111", worktrees[0].Head)
	assert.False(t, worktrees[0].Locked)

	assert.Equal(t, "feature/login", worktrees[1].Branch)
	assert.True(t, worktrees[1].Locked)

	assert.Equal(t, "", worktrees[2].Branch)
	assert.True(t, worktrees[2].Detached)
}

func TestParseWorktreeListBare(t *testing.T) {
	output := `worktree /srv/repos/project.git
bare
`

	worktrees := parseWorktreeList(output)
	require.Len(t, worktrees, 1)
	assert.True(t, worktrees[0].Bare)
	assert.Equal(t, "", worktrees[0].Branch)
}

func TestParseWorktreeListEmpty(t *testing.T) {
	assert.Empty(t, parseWorktreeList(""))
}

func TestParseWorktreeListNoTrailingBlank(t *testing.T) {
	output := "worktree /a\nHEAD 1234\nbranch refs/heads/x"

	worktrees := parseWorktreeList(output)
	require.Len(t, worktrees, 1)
	assert.Equal(t, "/a", worktrees[0].Path)
	assert.Equal(t, "x", worktrees[0].Branch)
}

func TestIsAlreadyCheckedOut(t *testing.T) {
	err := errors.GitCommandFailed([]string{"worktree", "add"},
		"fatal: 'feature/x' is already checked out at '/home/user/wt/feature/x'", assert.AnError)
	assert.True(t, isAlreadyCheckedOut(err))

	err = errors.GitCommandFailed([]string{"worktree", "add"},
		"fatal: could not create work tree dir", assert.AnError)
	assert.False(t, isAlreadyCheckedOut(err))
}

func TestWorktreeInfoString(t *testing.T) {
	assert.Equal(t, "/a [main]", WorktreeInfo{Path: "/a", Branch: "main"}.String())
	assert.Equal(t, "/b [(detached)]", WorktreeInfo{Path: "/b", Detached: true}.String())
}

func TestUpdateArgs(t *testing.T) {
	tests := []struct {
		strategy string
		want     []string
	}{
		{"rebase", []string{"rebase", "origin/main"}},
		{"merge", []string{"merge", "--no-edit", "origin/main"}},
		{"ff-only", []string{"merge", "--ff-only", "origin/main"}},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			args, err := updateArgs("origin/main", tt.strategy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, args)
		})
	}

	_, err := updateArgs("origin/main", "theirs")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
}
