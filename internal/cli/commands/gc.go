package commands

import (
	"github.com/spf13/cobra"
)

func gcCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Reconcile the worktree registry with the filesystem",
		Long: `Prune stale entries from git's worktree registry and remove empty
directories left under the worktree root. Safe to run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			result, err := s.Orch.GC(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			if jsonRequested(cmd) {
				return emitJSON(cmd, s.Config, map[string]interface{}{
					"empty_dirs_removed": result.EmptyDirsRemoved,
				})
			}

			cmd.Printf("Pruned registry, removed %d empty director(ies)\n", result.EmptyDirsRemoved)
			return nil
		},
	}
}
