package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"arbor/internal/hooks"
	"arbor/internal/render"
	"arbor/internal/worktree"
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <branch>",
		Short: "Create a worktree for a branch and run setup hooks",
		Long: `Create a worktree for the given branch at its templated path. The
branch is created from the base branch when it does not exist yet;
an existing branch is checked out instead. Post-create hooks run in
the new worktree; a failing hook leaves the worktree in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			from, _ := cmd.Flags().GetString("from")
			track, _ := cmd.Flags().GetBool("track")
			force, _ := cmd.Flags().GetBool("force")

			result, err := s.Orch.Create(cmd.Context(), worktree.CreateOptions{
				Branch: args[0],
				From:   from,
				Track:  track,
				Force:  force,
			})
			if err != nil {
				return HandleError(err)
			}

			if jsonRequested(cmd) {
				payload := map[string]interface{}{
					"branch":       result.Branch,
					"source":       result.Source,
					"path":         result.Path,
					"hooks_run":    len(result.HookResults),
					"hooks_failed": len(hooks.Failed(result.HookResults)),
				}
				if err := emitJSON(cmd, s.Config, payload); err != nil {
					return err
				}
			} else {
				cmd.Printf("Created worktree for %s at %s (from %s)\n", result.Branch, result.Path, result.Source)
			}

			if result.HooksFailed() {
				cmd.PrintErr(render.HookFailures(result))
				return fmt.Errorf("post-create hooks failed; the worktree was kept")
			}
			return nil
		},
	}

	cmd.Flags().StringP("from", "f", "", "Source branch (default: configured base)")
	cmd.Flags().BoolP("track", "t", false, "Set upstream to origin/<branch> when it exists")
	cmd.Flags().Bool("force", false, "Reuse an existing empty directory at the target path")

	return cmd
}
