package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"arbor/internal/render"
)

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show detailed status for every worktree",
		Long: `Show each worktree's branch, head, dirtiness, divergence from its
upstream, and how far it trails the base branch. Fetches from origin
once so the numbers are current.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			statuses, err := s.Orch.StatusAll(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			if jsonRequested(cmd) {
				if err := emitJSON(cmd, s.Config, statuses); err != nil {
					return err
				}
			} else {
				cmd.Print(render.StatusTable(statuses))
			}

			failed := 0
			for _, status := range statuses {
				if status.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("failed to inspect %d worktree(s)", failed)
			}
			return nil
		},
	}
}
