package cli

import (
	"context"

	"github.com/spf13/cobra"

	"arbor/internal/cli/commands"
)

// Manager handles CLI operations
type Manager struct {
	rootCmd *cobra.Command
}

// New creates a new CLI manager
func New() *Manager {
	m := &Manager{
		rootCmd: createRootCommand(),
	}
	m.setupCommands()
	return m
}

// Execute executes the CLI with the given arguments
func (m *Manager) Execute(args []string) error {
	return m.ExecuteWithContext(context.Background(), args)
}

// ExecuteWithContext executes the CLI with the given arguments and context
func (m *Manager) ExecuteWithContext(ctx context.Context, args []string) error {
	m.rootCmd.SetArgs(args)
	return m.rootCmd.ExecuteContext(ctx)
}

// setupCommands sets up all CLI commands
func (m *Manager) setupCommands() {
	for _, cmd := range commands.WorktreeCommands() {
		m.rootCmd.AddCommand(cmd)
	}
}
