package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/graph"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/scheduling"
	"github.com/google/uuid"
)

type relationService struct {
	database           *sql.DB
	uow                db.UnitOfWork
	locks              *KeyedMutex
	nonWorkingWeekdays []int
}

// NewRelationService wires the relation mutation orchestration. The weekday
// list is the calendar's non-working weekday configuration in ISO numbering.
func NewRelationService(database *sql.DB, uow db.UnitOfWork, locks *KeyedMutex, nonWorkingWeekdays []int) RelationService {
	return &relationService{
		database:           database,
		uow:                uow,
		locks:              locks,
		nonWorkingWeekdays: nonWorkingWeekdays,
	}
}

func (s *relationService) Create(ctx context.Context, predecessorID, successorID string, lag int) (*RelationResult, error) {
	rel := &domain.Relation{
		ID:            uuid.New().String(),
		PredecessorID: predecessorID,
		SuccessorID:   successorID,
		Lag:           lag,
		CreatedAt:     time.Now().UTC(),
	}
	if errs := rel.Validate(); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	unlock := s.locks.Lock(rootLockKey(ctx, s.database, successorID))
	defer unlock()

	var result *RelationResult
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := loadSnapshot(ctx, tx, s.nonWorkingWeekdays)
		if err != nil {
			return err
		}
		if snap.graph.Item(predecessorID) == nil {
			return fmt.Errorf("predecessor %q: %w", predecessorID, repository.ErrNotFound)
		}
		if snap.graph.Item(successorID) == nil {
			return fmt.Errorf("successor %q: %w", successorID, repository.ErrNotFound)
		}

		// Cycle check happens before any mutation: a rejected relation
		// must leave both the graph and the database untouched.
		if snap.graph.WouldCreateCycle(predecessorID, successorID) {
			return fmt.Errorf("%w: %s -> %s", graph.ErrWouldCycle, predecessorID, successorID)
		}

		relRepo := repository.NewSQLiteRelationRepo(tx)
		if err := s.cleanupRedundant(ctx, relRepo, snap, rel); err != nil {
			return err
		}
		if err := snap.graph.AddRelation(rel); err != nil {
			return err
		}
		if err := relRepo.Create(ctx, rel); err != nil {
			return err
		}

		engineResult, err := snap.engine().Reschedule(successorID)
		if err != nil {
			return err
		}
		if err := persistMutations(ctx, tx, engineResult, time.Now().UTC()); err != nil {
			return err
		}
		result = &RelationResult{Relation: rel, AllResults: engineResult}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// cleanupRedundant removes direct edges the new relation subsumes: an
// existing follows from the same predecessor to an ancestor of the new
// successor is implied by the deeper edge plus roll-up, and would otherwise
// double-constrain the container.
func (s *relationService) cleanupRedundant(ctx context.Context, relRepo repository.RelationRepo, snap *snapshot, rel *domain.Relation) error {
	for _, ancestor := range snap.graph.Ancestors(rel.SuccessorID) {
		removed := snap.graph.RemoveRelation(rel.PredecessorID, ancestor.ID)
		if removed == nil {
			continue
		}
		if err := relRepo.Delete(ctx, removed.ID); err != nil {
			return fmt.Errorf("removing redundant relation %s: %w", removed.ID, err)
		}
	}
	return nil
}

func (s *relationService) Delete(ctx context.Context, relationID string) (*RelationResult, error) {
	rel, err := repository.NewSQLiteRelationRepo(s.database).GetByID(ctx, relationID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(rootLockKey(ctx, s.database, rel.SuccessorID))
	defer unlock()

	var result *RelationResult
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		snap, err := loadSnapshot(ctx, tx, s.nonWorkingWeekdays)
		if err != nil {
			return err
		}

		removed := snap.graph.RemoveRelation(rel.PredecessorID, rel.SuccessorID)
		if removed == nil {
			return fmt.Errorf("relation %q: %w", relationID, repository.ErrNotFound)
		}
		if err := repository.NewSQLiteRelationRepo(tx).Delete(ctx, removed.ID); err != nil {
			return err
		}

		successor := snap.graph.Item(rel.SuccessorID)
		engineResult := &scheduling.Result{}
		if scheduling.FlipToManualIfUnderivable(snap.graph, successor) {
			// Nothing left to derive from: mode flips, dates freeze,
			// and no reflow is needed since no dates moved.
			engineResult.AddMutated(successor)
		} else {
			// Remaining predecessors (or children) take over; the
			// successor reflows from the now-governing constraint.
			engineResult, err = snap.engine().Reschedule(rel.SuccessorID)
			if err != nil {
				return err
			}
		}

		if err := persistMutations(ctx, tx, engineResult, time.Now().UTC()); err != nil {
			return err
		}
		result = &RelationResult{Relation: removed, AllResults: engineResult}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
