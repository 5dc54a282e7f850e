package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/calendar"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/graph"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/scheduling"
)

// snapshot is the in-memory graph and calendar for one scheduling operation,
// loaded inside the operation's transaction.
type snapshot struct {
	graph *graph.Graph
	cal   *calendar.Calendar
}

// loadSnapshot reads the full work item graph and calendar exceptions
// through tx-scoped repositories.
func loadSnapshot(ctx context.Context, tx db.DBTX, nonWorkingWeekdays []int) (*snapshot, error) {
	items, err := repository.NewSQLiteWorkItemRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading work items: %w", err)
	}
	rels, err := repository.NewSQLiteRelationRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading relations: %w", err)
	}
	dates, err := repository.NewSQLiteCalendarRepo(tx).ListNonWorkingDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading non-working dates: %w", err)
	}

	g, err := graph.New(items, rels)
	if err != nil {
		return nil, fmt.Errorf("building relation graph: %w", err)
	}
	cal, err := calendar.NewWithNonWorking(nonWorkingWeekdays, dates)
	if err != nil {
		return nil, fmt.Errorf("building calendar: %w", err)
	}
	return &snapshot{graph: g, cal: cal}, nil
}

// engine builds a rescheduling engine over the snapshot with the standard
// business validator attached.
func (s *snapshot) engine() *scheduling.Engine {
	return scheduling.NewEngine(s.graph, s.cal, scheduling.WithValidator(func(w *domain.WorkItem) []error {
		return w.Validate()
	}))
}

// rootLockKey resolves the topmost ancestor of an item outside the
// transaction; the root ID keys the per-region advisory lock. The walk
// tolerates items created concurrently by falling back to the item itself.
func rootLockKey(ctx context.Context, database *sql.DB, itemID string) string {
	repo := repository.NewSQLiteWorkItemRepo(database)
	cur := itemID
	for i := 0; i < 64; i++ {
		w, err := repo.GetByID(ctx, cur)
		if err != nil || w.ParentID == nil {
			return cur
		}
		cur = *w.ParentID
	}
	return cur
}

// persistMutations writes every mutated item back through the tx-scoped
// repository. Items with business validation errors are persisted too; the
// caller surfaces Result.Invalid per item.
func persistMutations(ctx context.Context, tx db.DBTX, result *scheduling.Result, now time.Time) error {
	repo := repository.NewSQLiteWorkItemRepo(tx)
	for _, w := range result.Mutated {
		w.UpdatedAt = now
		if err := repo.Update(ctx, w); err != nil {
			return fmt.Errorf("persisting rescheduled item %q: %w", w.ID, err)
		}
	}
	return nil
}
