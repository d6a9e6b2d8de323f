package commands

import (
	"github.com/spf13/cobra"

	"arbor/internal/worktree"
)

func rmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <branch>",
		Aliases: []string{"remove"},
		Short:   "Remove the worktree for a branch",
		Long: `Remove the worktree bound to the given branch. Naming a branch
explicitly overrides the protected set used by prune-merged. Without
--yes the target is only shown; nothing is removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			deleteBranch, _ := cmd.Flags().GetBool("delete-branch")
			force, _ := cmd.Flags().GetBool("force")
			yes, _ := cmd.Flags().GetBool("yes")

			confirm := func(path string) bool {
				if yes {
					return true
				}
				cmd.Printf("Would remove worktree at %s\n", path)
				return false
			}

			result, err := s.Orch.Remove(cmd.Context(), worktree.RemoveOptions{
				Branch:       args[0],
				DeleteBranch: deleteBranch,
				Force:        force,
				Confirm:      confirm,
			})
			if err != nil {
				// Partial success: the worktree may be gone while branch
				// deletion was refused.
				if result != nil && result.WorktreeRemoved {
					cmd.Printf("Removed worktree at %s\n", result.Path)
				}
				return HandleError(err)
			}

			if jsonRequested(cmd) {
				return emitJSON(cmd, s.Config, map[string]interface{}{
					"branch":           result.Branch,
					"path":             result.Path,
					"worktree_removed": result.WorktreeRemoved,
					"branch_deleted":   result.BranchDeleted,
				})
			}

			cmd.Printf("Removed worktree at %s\n", result.Path)
			if result.BranchDeleted {
				cmd.Printf("Deleted branch %s\n", result.Branch)
			}
			return nil
		},
	}

	cmd.Flags().BoolP("delete-branch", "d", false, "Also delete the local branch")
	cmd.Flags().Bool("force", false, "Force removal of a dirty worktree; with -d, delete unpushed branches")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation and remove immediately")

	return cmd
}
