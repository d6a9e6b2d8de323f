package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"arbor/internal/render"
	"arbor/internal/worktree"
)

func pullMainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull-main",
		Short: "Update every worktree from the base branch",
		Long: `Fetch from origin once, then update each worktree from the base
branch using the configured strategy. Dirty worktrees are skipped
unless --autostash is set; a conflicting update leaves git's normal
conflict state in that worktree and moves on to the next one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			base, _ := cmd.Flags().GetString("base")
			strategy, _ := cmd.Flags().GetString("strategy")
			autoStash, _ := cmd.Flags().GetBool("autostash")

			results, err := s.Orch.PullMain(cmd.Context(), worktree.SyncOptions{
				Base:      base,
				Strategy:  strategy,
				AutoStash: autoStash,
			})
			if err != nil {
				return HandleError(err)
			}

			if jsonRequested(cmd) {
				payload := make([]map[string]interface{}, 0, len(results))
				for _, r := range results {
					row := map[string]interface{}{
						"path":     r.Path,
						"branch":   r.Branch,
						"action":   r.Action,
						"strategy": r.Strategy,
					}
					if r.Err != nil {
						row["error"] = r.Err.Error()
					}
					if r.StashErr != nil {
						row["stash_error"] = r.StashErr.Error()
					}
					payload = append(payload, row)
				}
				if err := emitJSON(cmd, s.Config, payload); err != nil {
					return err
				}
			} else {
				cmd.Print(render.SyncResults(results))
			}

			failed := 0
			for _, r := range results {
				if r.Action == worktree.SyncFailed {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d worktree(s) failed to update", failed)
			}
			return nil
		},
	}

	cmd.Flags().String("base", "", "Base branch to update from (default: configured base)")
	cmd.Flags().String("strategy", "", "Update strategy: rebase, merge or ff-only (default: configured)")
	cmd.Flags().Bool("autostash", false, "Stash dirty worktrees before updating and restore after")

	return cmd
}
