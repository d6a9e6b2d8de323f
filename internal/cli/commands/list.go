package commands

import (
	"github.com/spf13/cobra"

	"arbor/internal/render"
)

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the repository's worktrees",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			worktrees, err := s.Orch.List(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			if jsonRequested(cmd) {
				return emitJSON(cmd, s.Config, worktrees)
			}
			cmd.Print(render.WorktreeList(worktrees))
			return nil
		},
	}
}
