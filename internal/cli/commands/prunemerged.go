package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"arbor/internal/render"
	"arbor/internal/worktree"
)

func pruneMergedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune-merged",
		Short: "Remove worktrees whose branches are merged into the base",
		Long: `Remove the worktrees of branches fully merged into the base branch.
The current branch and the protected set are never touched. Without
--yes the candidates are only listed; nothing is removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			base, _ := cmd.Flags().GetString("base")
			protected, _ := cmd.Flags().GetStringSlice("protect")
			deleteBranch, _ := cmd.Flags().GetBool("delete-branch")
			force, _ := cmd.Flags().GetBool("force")
			yes, _ := cmd.Flags().GetBool("yes")

			if !cmd.Flags().Changed("protect") {
				protected = nil // fall through to the configured set
			}

			confirm := func(branches []string) bool {
				if yes {
					return true
				}
				cmd.Printf("Would prune %d merged branch(es):\n", len(branches))
				for _, branch := range branches {
					cmd.Printf("  %s\n", branch)
				}
				return false
			}

			results, err := s.Orch.PruneMerged(cmd.Context(), worktree.PruneOptions{
				Base:         base,
				Protected:    protected,
				DeleteBranch: deleteBranch,
				Force:        force,
				Confirm:      confirm,
			})
			if err != nil {
				return HandleError(err)
			}

			if jsonRequested(cmd) {
				payload := make([]map[string]interface{}, 0, len(results))
				for _, r := range results {
					row := map[string]interface{}{
						"branch":           r.Branch,
						"path":             r.Path,
						"worktree_removed": r.WorktreeRemoved,
						"branch_deleted":   r.BranchDeleted,
					}
					if r.Err != nil {
						row["error"] = r.Err.Error()
					}
					payload = append(payload, row)
				}
				if err := emitJSON(cmd, s.Config, payload); err != nil {
					return err
				}
			} else {
				cmd.Print(render.PruneResults(results))
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("failed to prune %d branch(es)", failed)
			}
			return nil
		},
	}

	cmd.Flags().String("base", "", "Base branch to test merges against (default: configured base)")
	cmd.Flags().StringSlice("protect", nil, "Branches to protect (default: configured set)")
	cmd.Flags().BoolP("delete-branch", "d", false, "Also delete the local branches")
	cmd.Flags().Bool("force", false, "Delete branches even when they have unpushed commits")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation and prune immediately")

	return cmd
}
