package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/graph"
	"github.com/spf13/cobra"
)

func newCoveringCmd(deps Deps) *cobra.Command {
	var (
		from         string
		weekdays     []int
		dates        []string
		horizonWeeks int
		upstream     bool
	)
	cmd := &cobra.Command{
		Use:   "covering",
		Short: "Show items whose spans touch the given days",
		Long: "Answers which items would be affected if the given days became " +
			"non-working. With --upstream, reports the farthest predecessor in " +
			"each affected chain instead of the items themselves.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := graph.DaysSelector{
				Weekdays:     weekdays,
				HorizonWeeks: horizonWeeks,
			}
			sel.From = domain.NormalizeDate(time.Now().UTC())
			if from != "" {
				d, err := domain.ParseDate(from)
				if err != nil {
					return fmt.Errorf("invalid --from: %w", err)
				}
				sel.From = d
			}
			for _, s := range dates {
				d, err := domain.ParseDate(s)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", s, err)
				}
				sel.Dates = append(sel.Dates, d)
			}

			var (
				items []*domain.WorkItem
				err   error
			)
			if upstream {
				items, err = deps.Coverage.PredecessorsNeedingRescheduling(cmd.Context(), sel)
			} else {
				items, err = deps.Coverage.CoveringItems(cmd.Context(), sel)
			}
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no items covered")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.WorkItemTable(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "horizon start date (YYYY-MM-DD, default today)")
	cmd.Flags().IntSliceVar(&weekdays, "weekday", nil, "ISO weekday to select (1=Mon..7=Sun), repeatable")
	cmd.Flags().StringSliceVar(&dates, "date", nil, "literal date to select (YYYY-MM-DD), repeatable")
	cmd.Flags().IntVar(&horizonWeeks, "horizon-weeks", 52, "weeks ahead to project selected weekdays")
	cmd.Flags().BoolVar(&upstream, "upstream", false, "report farthest covering predecessors instead")
	return cmd
}
