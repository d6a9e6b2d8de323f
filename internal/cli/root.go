package cli

import (
	"github.com/spf13/cobra"

	"arbor/internal/logger"
)

// createRootCommand creates the root command with global flags
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "Git worktree lifecycle manager",
		Long: `arbor manages the lifecycle of git worktrees: it creates them at
predictable templated paths, runs post-create setup hooks, keeps them in
sync with the main branch, and prunes the ones whose branches have been
merged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logger.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to showing help if no subcommand
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Emit machine-readable JSON output")

	return rootCmd
}
