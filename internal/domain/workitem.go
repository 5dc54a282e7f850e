package domain

import (
	"fmt"
	"time"
)

// WorkItem is a schedulable unit of work. StartDate and FinishDate are
// inclusive calendar dates (midnight UTC, see NormalizeDate); either or both
// may be unset. The engine mutates items in place for the duration of one
// scheduling operation; persistence is the caller's concern.
type WorkItem struct {
	ID       string
	Title    string
	ParentID *string

	StartDate  *time.Time
	FinishDate *time.Time

	SchedulingMode SchedulingMode

	// IgnoreNonWorkingDays makes the item's own span and its gap to
	// predecessors count every calendar day as working.
	IgnoreNonWorkingDays bool

	// DurationDays, when set, fixes the item's span in working days
	// (calendar days when IgnoreNonWorkingDays). When unset, rescheduling
	// preserves the existing span.
	DurationDays *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Manual reports whether the item's dates are authoritative user input.
func (w *WorkItem) Manual() bool {
	return w.SchedulingMode == SchedulingManual
}

// Automatic reports whether the item's dates are derived from relations.
func (w *WorkItem) Automatic() bool {
	return w.SchedulingMode == SchedulingAutomatic
}

// HasDates reports whether both span bounds are set.
func (w *WorkItem) HasDates() bool {
	return w.StartDate != nil && w.FinishDate != nil
}

// CoversDate reports whether date falls inside the item's inclusive span.
// Items missing either bound cover nothing.
func (w *WorkItem) CoversDate(date time.Time) bool {
	if !w.HasDates() {
		return false
	}
	return !date.Before(*w.StartDate) && !date.After(*w.FinishDate)
}

// SetSpan assigns both bounds, normalizing to calendar dates.
func (w *WorkItem) SetSpan(start, finish time.Time) error {
	s, f := NormalizeDate(start), NormalizeDate(finish)
	if f.Before(s) {
		return fmt.Errorf("finish date %s before start date %s", f.Format(DateFormat), s.Format(DateFormat))
	}
	w.StartDate = &s
	w.FinishDate = &f
	return nil
}

// Validate checks structural attributes, not scheduling state.
func (w *WorkItem) Validate() []error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, fmt.Errorf("work item id is required"))
	}
	if w.Title == "" {
		errs = append(errs, fmt.Errorf("work item title is required"))
	}
	if !ValidSchedulingModes[string(w.SchedulingMode)] {
		errs = append(errs, fmt.Errorf("invalid scheduling mode %q", w.SchedulingMode))
	}
	if w.DurationDays != nil && *w.DurationDays < 1 {
		errs = append(errs, fmt.Errorf("duration must be at least 1 day, got %d", *w.DurationDays))
	}
	if w.StartDate != nil && w.FinishDate != nil && w.FinishDate.Before(*w.StartDate) {
		errs = append(errs, fmt.Errorf("finish date %s before start date %s",
			w.FinishDate.Format(DateFormat), w.StartDate.Format(DateFormat)))
	}
	return errs
}
