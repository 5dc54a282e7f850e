package cli

import (
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRelateCmd(deps Deps) *cobra.Command {
	var lag int
	cmd := &cobra.Command{
		Use:   "relate <predecessor> <successor>",
		Short: "Create a follows relation and reschedule the successor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := deps.Relations.Create(cmd.Context(), args[0], args[1], lag)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "relation %s: %s -> %s (lag %d)\n",
				result.Relation.ID, result.Relation.PredecessorID, result.Relation.SuccessorID, result.Relation.Lag)
			fmt.Fprint(cmd.OutOrStdout(), formatter.ReschedulingSummary(result.AllResults))
			return nil
		},
	}
	cmd.Flags().IntVar(&lag, "lag", 0, "minimum working-day gap beyond the implicit one day")
	return cmd
}

func newUnrelateCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "unrelate <relation-id>",
		Short: "Delete a follows relation and reflow the successor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := deps.Relations.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted relation %s\n", result.Relation.ID)
			fmt.Fprint(cmd.OutOrStdout(), formatter.ReschedulingSummary(result.AllResults))
			return nil
		},
	}
}
