package cli

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/spf13/cobra"
)

func newCalendarCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Inspect and edit non-working days",
	}
	cmd.AddCommand(
		newCalendarShowCmd(deps),
		newCalendarAddCmd(deps),
		newCalendarRemoveCmd(deps),
	)
	return cmd
}

func newCalendarShowCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show non-working weekdays and dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekdays := append([]int(nil), deps.NonWorkingWeekdays...)
			sort.Ints(weekdays)
			fmt.Fprintf(cmd.OutOrStdout(), "non-working weekdays (ISO): %v\n", weekdays)

			dates, err := deps.Calendar.ListNonWorkingDates(cmd.Context())
			if err != nil {
				return err
			}
			if len(dates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no non-working dates")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "non-working dates:")
			for _, d := range dates {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d.Format(domain.DateFormat))
			}
			return nil
		},
	}
}

func newCalendarAddCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "add-nonworking <date>...",
		Short: "Mark dates as non-working",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range args {
				d, err := domain.ParseDate(s)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", s, err)
				}
				if err := deps.Calendar.AddNonWorkingDate(cmd.Context(), d); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d non-working date(s)\n", len(args))
			fmt.Fprintln(cmd.OutOrStdout(), "run `horizon covering --upstream` to find items needing rescheduling")
			return nil
		},
	}
}

func newCalendarRemoveCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-nonworking <date>...",
		Short: "Make dates working again",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range args {
				d, err := domain.ParseDate(s)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", s, err)
				}
				if err := deps.Calendar.RemoveNonWorkingDate(cmd.Context(), d); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d non-working date(s)\n", len(args))
			return nil
		},
	}
}
