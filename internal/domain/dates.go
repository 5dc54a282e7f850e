package domain

import "time"

// DateFormat is the canonical wire/storage format for calendar dates.
const DateFormat = "2006-01-02"

// Date builds a calendar date normalized to midnight UTC. All engine date
// arithmetic assumes this normalization; instants with a time-of-day
// component must go through NormalizeDate first.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NormalizeDate truncates an instant to its calendar date in UTC.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// SameDate reports whether two normalized dates are the same calendar day.
func SameDate(a, b time.Time) bool {
	return a.Equal(b)
}

// DaysBetween returns the number of calendar days from a to b. Positive when
// b is after a, zero when equal, negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// ISOWeekday maps time.Weekday to ISO-8601 numbering: 1=Monday .. 7=Sunday.
func ISOWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// WeekdayFromISO is the inverse of ISOWeekday. The value must be in 1..7.
func WeekdayFromISO(iso int) time.Weekday {
	if iso == 7 {
		return time.Sunday
	}
	return time.Weekday(iso)
}
