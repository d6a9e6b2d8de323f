package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/errors"
)

func TestWorktreeCommands(t *testing.T) {
	cmds := WorktreeCommands()
	require.Len(t, cmds, 9)

	byName := make(map[string]*cobra.Command)
	for _, cmd := range cmds {
		byName[cmd.Name()] = cmd
	}
	for _, want := range []string{"new", "list", "status", "where", "pull-main", "prune-merged", "rm", "gc", "doctor"} {
		require.Contains(t, byName, want)
	}

	assert.NotNil(t, byName["new"].Flags().Lookup("from"))
	assert.NotNil(t, byName["new"].Flags().Lookup("track"))
	assert.NotNil(t, byName["new"].Flags().Lookup("force"))

	assert.NotNil(t, byName["pull-main"].Flags().Lookup("base"))
	assert.NotNil(t, byName["pull-main"].Flags().Lookup("strategy"))
	assert.NotNil(t, byName["pull-main"].Flags().Lookup("autostash"))

	assert.NotNil(t, byName["prune-merged"].Flags().Lookup("yes"))
	assert.NotNil(t, byName["prune-merged"].Flags().Lookup("delete-branch"))
	assert.NotNil(t, byName["prune-merged"].Flags().Lookup("protect"))

	assert.NotNil(t, byName["rm"].Flags().Lookup("yes"))
	assert.NotNil(t, byName["rm"].Flags().Lookup("delete-branch"))
	assert.Contains(t, byName["rm"].Aliases, "remove")
	assert.Contains(t, byName["list"].Aliases, "ls")
}

func TestHandleErrorAddsTips(t *testing.T) {
	err := HandleError(errors.WorktreeNotFound("feature"))
	assert.Contains(t, err.Error(), "arbor list")

	err = HandleError(errors.ErrOperationAborted)
	assert.Contains(t, err.Error(), "--yes")

	plain := assert.AnError
	assert.Equal(t, plain, HandleError(plain))
	assert.NoError(t, HandleError(nil))
}
