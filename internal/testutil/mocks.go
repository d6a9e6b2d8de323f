// Package testutil provides shared test doubles.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"arbor/internal/git"
)

// MockGateway is a testify mock of the orchestrator's git gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) IsRepository(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockGateway) FetchOrigin(ctx context.Context, repoRoot string) error {
	args := m.Called(ctx, repoRoot)
	return args.Error(0)
}

func (m *MockGateway) RefExists(ctx context.Context, repoRoot, name string) bool {
	args := m.Called(ctx, repoRoot, name)
	return args.Bool(0)
}

func (m *MockGateway) DefaultBranch(ctx context.Context, repoRoot string) string {
	args := m.Called(ctx, repoRoot)
	return args.String(0)
}

func (m *MockGateway) ListWorktrees(ctx context.Context, repoRoot string) ([]git.WorktreeInfo, error) {
	args := m.Called(ctx, repoRoot)
	var infos []git.WorktreeInfo
	if v := args.Get(0); v != nil {
		infos = v.([]git.WorktreeInfo)
	}
	return infos, args.Error(1)
}

func (m *MockGateway) WorktreePathForBranch(ctx context.Context, repoRoot, branch string) (string, error) {
	args := m.Called(ctx, repoRoot, branch)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) IsDirty(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *MockGateway) UpstreamBranch(ctx context.Context, path string) string {
	args := m.Called(ctx, path)
	return args.String(0)
}

func (m *MockGateway) AheadBehind(ctx context.Context, path string) (int, int, error) {
	args := m.Called(ctx, path)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockGateway) BehindBase(ctx context.Context, path, base string) (int, error) {
	args := m.Called(ctx, path, base)
	return args.Int(0), args.Error(1)
}

func (m *MockGateway) UnpushedCommits(ctx context.Context, path, branch string) (int, error) {
	args := m.Called(ctx, path, branch)
	return args.Int(0), args.Error(1)
}

func (m *MockGateway) ShortSHA(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) CurrentBranch(ctx context.Context, repoRoot string) string {
	args := m.Called(ctx, repoRoot)
	return args.String(0)
}

func (m *MockGateway) MergedBranches(ctx context.Context, repoRoot, base string) ([]string, error) {
	args := m.Called(ctx, repoRoot, base)
	var branches []string
	if v := args.Get(0); v != nil {
		branches = v.([]string)
	}
	return branches, args.Error(1)
}

func (m *MockGateway) CreateWorktree(ctx context.Context, repoRoot, path, branch, source string, createBranch bool) error {
	args := m.Called(ctx, repoRoot, path, branch, source, createBranch)
	return args.Error(0)
}

func (m *MockGateway) RemoveWorktree(ctx context.Context, repoRoot, path string, force bool) error {
	args := m.Called(ctx, repoRoot, path, force)
	return args.Error(0)
}

func (m *MockGateway) PruneWorktrees(ctx context.Context, repoRoot string) error {
	args := m.Called(ctx, repoRoot)
	return args.Error(0)
}

func (m *MockGateway) DeleteBranch(ctx context.Context, repoRoot, branch string, force bool) error {
	args := m.Called(ctx, repoRoot, branch, force)
	return args.Error(0)
}

func (m *MockGateway) SetUpstream(ctx context.Context, path, branch, upstream string) error {
	args := m.Called(ctx, path, branch, upstream)
	return args.Error(0)
}

func (m *MockGateway) UpdateWithStrategy(ctx context.Context, path, base, strategy string) error {
	args := m.Called(ctx, path, base, strategy)
	return args.Error(0)
}

func (m *MockGateway) StashPush(ctx context.Context, path, message string) error {
	args := m.Called(ctx, path, message)
	return args.Error(0)
}

func (m *MockGateway) StashPop(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
