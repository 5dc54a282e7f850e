package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/horizon/internal/calendar"
	"github.com/alexanderramin/horizon/internal/cli"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.horizon/horizon.db
	dbPath := os.Getenv("HORIZON_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".horizon", "horizon.db")
	}

	// Weekday configuration comes from the optional calendar file; date
	// exceptions live in the database so they can be edited at runtime.
	nonWorkingWeekdays := []int{6, 7}
	var seedDates []string
	if path := os.Getenv("HORIZON_CALENDAR"); path != "" {
		cfg, err := calendar.LoadFileConfig(path)
		if err != nil {
			return err
		}
		if len(cfg.NonWorkingWeekdays) > 0 {
			nonWorkingWeekdays = cfg.NonWorkingWeekdays
		}
		seedDates = cfg.NonWorkingDates
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	workItemRepo := repository.NewSQLiteWorkItemRepo(database)
	calendarRepo := repository.NewSQLiteCalendarRepo(database)

	// Seed date exceptions from the calendar file; inserts are idempotent.
	if len(seedDates) > 0 {
		cfg := calendar.FileConfig{NonWorkingDates: seedDates}
		dates, err := cfg.ParseDates()
		if err != nil {
			return err
		}
		for _, d := range dates {
			if err := calendarRepo.AddNonWorkingDate(context.Background(), d); err != nil {
				return fmt.Errorf("seeding non-working date: %w", err)
			}
		}
	}

	// Wire unit of work and the per-region lock shared by mutating services
	uow := db.NewSQLiteUnitOfWork(database)
	locks := service.NewKeyedMutex()

	deps := cli.Deps{
		Items:     service.NewWorkItemService(workItemRepo),
		Relations: service.NewRelationService(database, uow, locks, nonWorkingWeekdays),
		Schedule:  service.NewScheduleService(database, uow, locks, nonWorkingWeekdays),
		Coverage:  service.NewCoverageService(database, nonWorkingWeekdays),
		Calendar:  calendarRepo,

		NonWorkingWeekdays: nonWorkingWeekdays,
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(deps)
	return rootCmd.Execute()
}
