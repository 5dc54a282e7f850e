package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
)

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	List(ctx context.Context) ([]*domain.WorkItem, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error
	Delete(ctx context.Context, id string) error
}

type RelationRepo interface {
	Create(ctx context.Context, r *domain.Relation) error
	GetByID(ctx context.Context, id string) (*domain.Relation, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Relation, error)
	ListPredecessors(ctx context.Context, workItemID string) ([]*domain.Relation, error)
	ListSuccessors(ctx context.Context, workItemID string) ([]*domain.Relation, error)
}

type CalendarRepo interface {
	AddNonWorkingDate(ctx context.Context, date time.Time) error
	RemoveNonWorkingDate(ctx context.Context, date time.Time) error
	ListNonWorkingDates(ctx context.Context) ([]time.Time, error)
}
