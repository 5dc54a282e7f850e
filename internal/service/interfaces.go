package service

import (
	"context"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/scheduling"
)

// RelationResult is the outcome of a relation mutation: the relation that was
// created or deleted plus everything the rescheduling pass touched.
type RelationResult struct {
	Relation   *domain.Relation
	AllResults *scheduling.Result
}

// RelationService creates and deletes follows relations as atomic operations:
// cycle validation, redundancy cleanup, the edge mutation and the resulting
// rescheduling commit together or not at all.
type RelationService interface {
	Create(ctx context.Context, predecessorID, successorID string, lag int) (*RelationResult, error)
	Delete(ctx context.Context, relationID string) (*RelationResult, error)
}

// ScheduleService covers date and mode changes on single items, reflowing
// the affected subgraph after each change.
type ScheduleService interface {
	MoveItem(ctx context.Context, id string, start, finish time.Time) (*scheduling.Result, error)
	SetMode(ctx context.Context, id string, mode domain.SchedulingMode) (*scheduling.Result, error)
	Reflow(ctx context.Context, seedIDs ...string) (*scheduling.Result, error)
}

// WorkItemService handles work item CRUD outside of scheduling.
type WorkItemService interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	List(ctx context.Context) ([]*domain.WorkItem, error)
	Delete(ctx context.Context, id string) error
}
