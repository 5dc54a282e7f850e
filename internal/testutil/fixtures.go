package testutil

import (
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/google/uuid"
)

// WorkItem options
type WorkItemOption func(*domain.WorkItem)

func WithID(id string) WorkItemOption {
	return func(w *domain.WorkItem) { w.ID = id }
}

func WithSpan(start, finish time.Time) WorkItemOption {
	return func(w *domain.WorkItem) {
		s, f := domain.NormalizeDate(start), domain.NormalizeDate(finish)
		w.StartDate = &s
		w.FinishDate = &f
	}
}

func WithMode(mode domain.SchedulingMode) WorkItemOption {
	return func(w *domain.WorkItem) { w.SchedulingMode = mode }
}

func WithParent(parentID string) WorkItemOption {
	return func(w *domain.WorkItem) { w.ParentID = &parentID }
}

func WithDuration(days int) WorkItemOption {
	return func(w *domain.WorkItem) { w.DurationDays = &days }
}

func WithIgnoreNonWorkingDays() WorkItemOption {
	return func(w *domain.WorkItem) { w.IgnoreNonWorkingDays = true }
}

// NewTestWorkItem builds an automatic work item with sensible defaults.
func NewTestWorkItem(title string, opts ...WorkItemOption) *domain.WorkItem {
	now := time.Now().UTC()
	w := &domain.WorkItem{
		ID:             uuid.New().String(),
		Title:          title,
		SchedulingMode: domain.SchedulingAutomatic,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewTestRelation builds a follows relation between two items.
func NewTestRelation(predecessorID, successorID string, lag int) *domain.Relation {
	return &domain.Relation{
		ID:            uuid.New().String(),
		PredecessorID: predecessorID,
		SuccessorID:   successorID,
		Lag:           lag,
		CreatedAt:     time.Now().UTC(),
	}
}
