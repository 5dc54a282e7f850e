package cli

import (
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <id> [id...]",
		Short: "Re-derive dates starting from the given items",
		Long: "Re-runs date derivation from the given seed items, propagating " +
			"through follows relations and parent roll-ups until dates settle.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := deps.Schedule.Reflow(cmd.Context(), args...)
			if err != nil {
				return err
			}
			if len(result.Mutated) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to change")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.ReschedulingSummary(result))
			return nil
		},
	}
}
