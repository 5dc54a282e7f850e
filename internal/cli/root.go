package cli

import (
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/service"
	"github.com/spf13/cobra"
)

// Deps are the wired services the commands operate on.
type Deps struct {
	Items     service.WorkItemService
	Relations service.RelationService
	Schedule  service.ScheduleService
	Coverage  service.CoverageService
	Calendar  repository.CalendarRepo

	// NonWorkingWeekdays is the ISO weekday configuration in effect.
	NonWorkingWeekdays []int
}

// NewRootCmd builds the horizon command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "horizon",
		Short:         "Work package scheduling over dependency and hierarchy graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newItemCmd(deps),
		newRelateCmd(deps),
		newUnrelateCmd(deps),
		newScheduleCmd(deps),
		newCoveringCmd(deps),
		newCalendarCmd(deps),
	)
	return root
}
