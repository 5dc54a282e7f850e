package service

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/graph"
)

// CoverageService answers "which items are touched by these days" questions,
// used when non-working day configuration is about to change.
type CoverageService interface {
	CoveringItems(ctx context.Context, sel graph.DaysSelector) ([]*domain.WorkItem, error)
	PredecessorsNeedingRescheduling(ctx context.Context, sel graph.DaysSelector) ([]*domain.WorkItem, error)
}

type coverageService struct {
	database           *sql.DB
	nonWorkingWeekdays []int
}

func NewCoverageService(database *sql.DB, nonWorkingWeekdays []int) CoverageService {
	return &coverageService{database: database, nonWorkingWeekdays: nonWorkingWeekdays}
}

func (s *coverageService) CoveringItems(ctx context.Context, sel graph.DaysSelector) ([]*domain.WorkItem, error) {
	snap, err := loadSnapshot(ctx, s.database, s.nonWorkingWeekdays)
	if err != nil {
		return nil, err
	}
	return snap.graph.CoveringItems(snap.cal, sel)
}

func (s *coverageService) PredecessorsNeedingRescheduling(ctx context.Context, sel graph.DaysSelector) ([]*domain.WorkItem, error) {
	snap, err := loadSnapshot(ctx, s.database, s.nonWorkingWeekdays)
	if err != nil {
		return nil, err
	}
	return snap.graph.PredecessorsNeedingRescheduling(snap.cal, sel)
}
