package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"arbor/internal/render"
)

func doctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return HandleError(err)
			}

			report := s.Orch.Doctor(cmd.Context())

			if jsonRequested(cmd) {
				if err := emitJSON(cmd, s.Config, report.Checks); err != nil {
					return err
				}
			} else {
				cmd.Print(render.Doctor(report))
			}

			if issues := report.Issues(); len(issues) > 0 {
				return fmt.Errorf("%d check(s) failed", len(issues))
			}
			return nil
		},
	}
}
