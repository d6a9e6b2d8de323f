package commands

import (
	"github.com/spf13/cobra"

	"arbor/internal/errors"
)

func whereCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "where <branch>",
		Short: "Print the worktree path for a branch",
		Long: `Print the absolute path of the worktree bound to the given branch,
suitable for shell substitution: cd "$(arbor where my-branch)".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			path, err := s.Orch.Where(cmd.Context(), args[0])
			if err != nil {
				return HandleError(err)
			}
			if path == "" {
				return HandleError(errors.WorktreeNotFound(args[0]))
			}

			cmd.Println(path)
			return nil
		},
	}
}
