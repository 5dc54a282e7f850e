package cli

import (
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/spf13/cobra"
)

func newItemCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage work items",
	}
	cmd.AddCommand(
		newItemAddCmd(deps),
		newItemListCmd(deps),
		newItemMoveCmd(deps),
		newItemSetModeCmd(deps),
	)
	return cmd
}

func newItemAddCmd(deps Deps) *cobra.Command {
	var (
		title     string
		start     string
		finish    string
		parent    string
		mode      string
		duration  int
		ignoreNWD bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a work item",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.WorkItem{
				Title:                title,
				SchedulingMode:       domain.SchedulingMode(mode),
				IgnoreNonWorkingDays: ignoreNWD,
			}
			if parent != "" {
				w.ParentID = &parent
			}
			if duration > 0 {
				w.DurationDays = &duration
			}
			if start != "" && finish != "" {
				s, err := domain.ParseDate(start)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				f, err := domain.ParseDate(finish)
				if err != nil {
					return fmt.Errorf("invalid --finish: %w", err)
				}
				if err := w.SetSpan(s, f); err != nil {
					return err
				}
			}
			if err := deps.Items.Create(cmd.Context(), w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", w.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "item title (required)")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&finish, "finish", "", "finish date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&parent, "parent", "", "parent item ID")
	cmd.Flags().StringVar(&mode, "mode", string(domain.SchedulingManual), "scheduling mode: manual or automatic")
	cmd.Flags().IntVar(&duration, "duration", 0, "duration in working days")
	cmd.Flags().BoolVar(&ignoreNWD, "ignore-non-working", false, "count every calendar day as working")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newItemListCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List work items",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := deps.Items.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.WorkItemTable(items))
			return nil
		},
	}
}

func newItemMoveCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <start> <finish>",
		Short: "Set an item's dates and reflow its successors",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := domain.ParseDate(args[1])
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			finish, err := domain.ParseDate(args[2])
			if err != nil {
				return fmt.Errorf("invalid finish date: %w", err)
			}
			result, err := deps.Schedule.MoveItem(cmd.Context(), args[0], start, finish)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.ReschedulingSummary(result))
			return nil
		},
	}
}

func newItemSetModeCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "set-mode <id> <manual|automatic>",
		Short: "Switch an item's scheduling mode",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := deps.Schedule.SetMode(cmd.Context(), args[0], domain.SchedulingMode(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.ReschedulingSummary(result))
			return nil
		},
	}
}
