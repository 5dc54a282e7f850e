package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
)

// ErrInvalidWeekday indicates a day-of-week selector value outside 1..7.
var ErrInvalidWeekday = errors.New("weekday must be between 1 (Monday) and 7 (Sunday)")

// ErrNoWorkingDays indicates a configuration that marks every weekday
// non-working. Working-day arithmetic has no fixpoint on such a calendar.
var ErrNoWorkingDays = errors.New("calendar must keep at least one working weekday")

// Calendar answers working-day questions for a scheduling horizon. The zero
// value treats every day as working; use New for the common
// Saturday/Sunday-off configuration.
type Calendar struct {
	nonWorkingWeekdays map[time.Weekday]bool
	nonWorkingDates    map[time.Time]bool
}

// New returns a calendar with Saturday and Sunday non-working and no
// date exceptions.
func New() *Calendar {
	return &Calendar{
		nonWorkingWeekdays: map[time.Weekday]bool{
			time.Saturday: true,
			time.Sunday:   true,
		},
		nonWorkingDates: make(map[time.Time]bool),
	}
}

// NewWithNonWorking builds a calendar from ISO weekdays (1=Monday..7=Sunday)
// and explicit non-working dates.
func NewWithNonWorking(isoWeekdays []int, dates []time.Time) (*Calendar, error) {
	c := &Calendar{
		nonWorkingWeekdays: make(map[time.Weekday]bool),
		nonWorkingDates:    make(map[time.Time]bool),
	}
	for _, iso := range isoWeekdays {
		if iso < 1 || iso > 7 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidWeekday, iso)
		}
		c.nonWorkingWeekdays[domain.WeekdayFromISO(iso)] = true
	}
	if len(c.nonWorkingWeekdays) == 7 {
		return nil, ErrNoWorkingDays
	}
	for _, d := range dates {
		c.nonWorkingDates[domain.NormalizeDate(d)] = true
	}
	return c, nil
}

// AddNonWorkingDate marks a single date as non-working.
func (c *Calendar) AddNonWorkingDate(d time.Time) {
	if c.nonWorkingDates == nil {
		c.nonWorkingDates = make(map[time.Time]bool)
	}
	c.nonWorkingDates[domain.NormalizeDate(d)] = true
}

// IsWorkingDay reports whether date is a working day under this calendar.
// Items that ignore non-working days bypass this at the call site.
func (c *Calendar) IsWorkingDay(date time.Time) bool {
	d := domain.NormalizeDate(date)
	if c.nonWorkingWeekdays[d.Weekday()] {
		return false
	}
	return !c.nonWorkingDates[d]
}

// NextWorkingDay returns the first working day on or after date.
func (c *Calendar) NextWorkingDay(date time.Time) time.Time {
	d := domain.NormalizeDate(date)
	for !c.IsWorkingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// AddWorkingDays advances date by n working days, skipping non-working days.
// With n == 0 the date is returned unchanged even if non-working. When
// ignoreNonWorking is set every calendar day counts.
func (c *Calendar) AddWorkingDays(date time.Time, n int, ignoreNonWorking bool) time.Time {
	d := domain.NormalizeDate(date)
	if ignoreNonWorking {
		return d.AddDate(0, 0, n)
	}
	for i := 0; i < n; i++ {
		d = c.NextWorkingDay(d.AddDate(0, 0, 1))
	}
	return d
}

// WorkingDaysBetween counts working days in the inclusive span [start, finish].
// When ignoreNonWorking is set it is the plain calendar-day count.
func (c *Calendar) WorkingDaysBetween(start, finish time.Time, ignoreNonWorking bool) int {
	s, f := domain.NormalizeDate(start), domain.NormalizeDate(finish)
	if f.Before(s) {
		return 0
	}
	if ignoreNonWorking {
		return domain.DaysBetween(s, f) + 1
	}
	count := 0
	for d := s; !d.After(f); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			count++
		}
	}
	return count
}

// SpanFinish returns the inclusive finish date of a span that starts at start
// and lasts durationDays working days (calendar days when ignoreNonWorking).
// durationDays must be >= 1.
func (c *Calendar) SpanFinish(start time.Time, durationDays int, ignoreNonWorking bool) time.Time {
	return c.AddWorkingDays(start, durationDays-1, ignoreNonWorking)
}

// ExpandDaysSelector resolves a mixed day-of-week/specific-date selector into
// concrete dates. Each ISO weekday is projected forward for horizonWeeks
// occurrences starting from the first occurrence on or after 'from'; literal
// dates are unioned in as-is. An empty selector yields an empty set.
func (c *Calendar) ExpandDaysSelector(from time.Time, isoWeekdays []int, dates []time.Time, horizonWeeks int) (map[time.Time]bool, error) {
	out := make(map[time.Time]bool)
	start := domain.NormalizeDate(from)
	for _, iso := range isoWeekdays {
		if iso < 1 || iso > 7 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidWeekday, iso)
		}
		target := domain.WeekdayFromISO(iso)
		d := start
		for d.Weekday() != target {
			d = d.AddDate(0, 0, 1)
		}
		for week := 0; week < horizonWeeks; week++ {
			out[d] = true
			d = d.AddDate(0, 0, 7)
		}
	}
	for _, d := range dates {
		out[domain.NormalizeDate(d)] = true
	}
	return out, nil
}
