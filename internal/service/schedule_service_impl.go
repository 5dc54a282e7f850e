package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/scheduling"
)

type scheduleService struct {
	database           *sql.DB
	uow                db.UnitOfWork
	locks              *KeyedMutex
	nonWorkingWeekdays []int
}

func NewScheduleService(database *sql.DB, uow db.UnitOfWork, locks *KeyedMutex, nonWorkingWeekdays []int) ScheduleService {
	return &scheduleService{
		database:           database,
		uow:                uow,
		locks:              locks,
		nonWorkingWeekdays: nonWorkingWeekdays,
	}
}

// MoveItem sets an item's dates as authoritative user input. The item
// becomes manually scheduled (moved dates are a commitment, not a
// derivation) and everything downstream reflows.
func (s *scheduleService) MoveItem(ctx context.Context, id string, start, finish time.Time) (*scheduling.Result, error) {
	unlock := s.locks.Lock(rootLockKey(ctx, s.database, id))
	defer unlock()

	var result *scheduling.Result
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := loadSnapshot(ctx, tx, s.nonWorkingWeekdays)
		if err != nil {
			return err
		}
		w := snap.graph.Item(id)
		if w == nil {
			return fmt.Errorf("work item %q: %w", id, repository.ErrNotFound)
		}
		if err := w.SetSpan(start, finish); err != nil {
			return err
		}
		w.SchedulingMode = domain.SchedulingManual

		result, err = snap.engine().Reschedule(id)
		if err != nil {
			return err
		}
		result.AddMutated(w)
		return persistMutations(ctx, tx, result, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetMode switches scheduling mode. Automatic-to-manual freezes the current
// dates; manual-to-automatic immediately re-derives them from relations.
func (s *scheduleService) SetMode(ctx context.Context, id string, mode domain.SchedulingMode) (*scheduling.Result, error) {
	if !domain.ValidSchedulingModes[string(mode)] {
		return nil, fmt.Errorf("invalid scheduling mode %q", mode)
	}

	unlock := s.locks.Lock(rootLockKey(ctx, s.database, id))
	defer unlock()

	var result *scheduling.Result
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := loadSnapshot(ctx, tx, s.nonWorkingWeekdays)
		if err != nil {
			return err
		}
		w := snap.graph.Item(id)
		if w == nil {
			return fmt.Errorf("work item %q: %w", id, repository.ErrNotFound)
		}
		if w.SchedulingMode == mode {
			result = &scheduling.Result{}
			return nil
		}
		w.SchedulingMode = mode

		result, err = snap.engine().Reschedule(id)
		if err != nil {
			return err
		}
		result.AddMutated(w)
		return persistMutations(ctx, tx, result, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reflow re-runs date derivation from the given seed items without changing
// any of them directly. Useful after out-of-band edits or calendar changes.
func (s *scheduleService) Reflow(ctx context.Context, seedIDs ...string) (*scheduling.Result, error) {
	if len(seedIDs) == 0 {
		return &scheduling.Result{}, nil
	}

	// One advisory lock per distinct hierarchy region, acquired in sorted
	// order so concurrent multi-seed reflows cannot deadlock.
	keys := make([]string, 0, len(seedIDs))
	seen := make(map[string]bool, len(seedIDs))
	for _, id := range seedIDs {
		k := rootLockKey(ctx, s.database, id)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		unlock := s.locks.Lock(k)
		defer unlock()
	}

	var result *scheduling.Result
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := loadSnapshot(ctx, tx, s.nonWorkingWeekdays)
		if err != nil {
			return err
		}
		result, err = snap.engine().Reschedule(seedIDs...)
		if err != nil {
			return err
		}
		return persistMutations(ctx, tx, result, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
