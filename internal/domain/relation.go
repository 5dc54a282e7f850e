package domain

import (
	"fmt"
	"time"
)

// Relation is a directed follows edge: the successor may start no earlier
// than Lag+1 working days after the predecessor finishes. Parent/child
// hierarchy is carried on WorkItem.ParentID, not as Relation rows.
type Relation struct {
	ID            string
	PredecessorID string
	SuccessorID   string

	// Lag is the minimum number of working days between the predecessor's
	// finish and the successor's start, beyond the implicit one-day gap.
	Lag int

	CreatedAt time.Time
}

// Validate checks structural attributes of the relation.
func (r *Relation) Validate() []error {
	var errs []error
	if r.PredecessorID == "" {
		errs = append(errs, fmt.Errorf("relation predecessor id is required"))
	}
	if r.SuccessorID == "" {
		errs = append(errs, fmt.Errorf("relation successor id is required"))
	}
	if r.PredecessorID != "" && r.PredecessorID == r.SuccessorID {
		errs = append(errs, fmt.Errorf("relation cannot point an item at itself"))
	}
	if r.Lag < 0 {
		errs = append(errs, fmt.Errorf("relation lag must be >= 0, got %d", r.Lag))
	}
	return errs
}
