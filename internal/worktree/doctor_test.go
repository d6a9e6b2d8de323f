package worktree

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDoctorHealthy(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	gw.On("Version", mock.Anything).Return("git version 2.44.0", nil)
	gw.On("IsRepository", o.repoRoot).Return(true)

	report := o.Doctor(ctx)
	require.Empty(t, report.Issues())
}

func TestDoctorGitUnavailable(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	gw.On("Version", mock.Anything).Return("", os.ErrNotExist)
	gw.On("IsRepository", o.repoRoot).Return(true)

	report := o.Doctor(ctx)
	issues := report.Issues()
	require.NotEmpty(t, issues)
	require.Equal(t, "git available", issues[0].Name)
}

func TestDoctorFlagsNonExecutableHooks(t *testing.T) {
	o, gw := newTestOrchestrator(t)
	ctx := context.Background()

	hookDir := filepath.Join(t.TempDir(), "post_create.d")
	require.NoError(t, os.MkdirAll(hookDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(hookDir, "10-setup.sh"), []byte("#!/bin/sh\n"), 0644))
	o.LocalHookDir = hookDir

	gw.On("Version", mock.Anything).Return("git version 2.44.0", nil)
	gw.On("IsRepository", o.repoRoot).Return(true)

	report := o.Doctor(ctx)
	issues := report.Issues()
	require.Len(t, issues, 1)
	require.Equal(t, "hooks executable", issues[0].Name)
	require.Contains(t, issues[0].Note, "10-setup.sh")
}
