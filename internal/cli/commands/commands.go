// Package commands implements the arbor CLI commands.
package commands

import (
	"github.com/spf13/cobra"
)

// WorktreeCommands creates the full top-level command set.
func WorktreeCommands() []*cobra.Command {
	return []*cobra.Command{
		newCommand(),
		listCommand(),
		statusCommand(),
		whereCommand(),
		pullMainCommand(),
		pruneMergedCommand(),
		rmCommand(),
		gcCommand(),
		doctorCommand(),
	}
}
