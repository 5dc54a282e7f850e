package calendar

import (
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// June 2025: Mon 2025-06-09 .. Fri 2025-06-13, weekend 14/15.
var (
	mon = domain.Date(2025, time.June, 9)
	tue = domain.Date(2025, time.June, 10)
	fri = domain.Date(2025, time.June, 13)
	sat = domain.Date(2025, time.June, 14)
	sun = domain.Date(2025, time.June, 15)
)

func TestIsWorkingDay_Weekends(t *testing.T) {
	c := New()
	assert.True(t, c.IsWorkingDay(mon))
	assert.True(t, c.IsWorkingDay(fri))
	assert.False(t, c.IsWorkingDay(sat))
	assert.False(t, c.IsWorkingDay(sun))
}

func TestIsWorkingDay_DateException(t *testing.T) {
	c := New()
	c.AddNonWorkingDate(tue)
	assert.False(t, c.IsWorkingDay(tue))
	assert.True(t, c.IsWorkingDay(mon))
}

func TestIsWorkingDay_ZeroValueAllWorking(t *testing.T) {
	var c Calendar
	assert.True(t, c.IsWorkingDay(sat))
	assert.True(t, c.IsWorkingDay(sun))
}

func TestNextWorkingDay_SkipsWeekend(t *testing.T) {
	c := New()
	assert.Equal(t, mon, c.NextWorkingDay(mon), "working day maps to itself")
	monNext := domain.Date(2025, time.June, 16)
	assert.Equal(t, monNext, c.NextWorkingDay(sat))
	assert.Equal(t, monNext, c.NextWorkingDay(sun))
}

func TestAddWorkingDays(t *testing.T) {
	c := New()
	cases := []struct {
		name   string
		from   time.Time
		n      int
		ignore bool
		want   time.Time
	}{
		{"zero keeps date", fri, 0, false, fri},
		{"within week", mon, 3, false, domain.Date(2025, time.June, 12)},
		{"across weekend", fri, 1, false, domain.Date(2025, time.June, 16)},
		{"two across weekend", fri, 2, false, domain.Date(2025, time.June, 17)},
		{"ignoring counts calendar days", fri, 2, true, sun},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.AddWorkingDays(tc.from, tc.n, tc.ignore), tc.name)
	}
}

func TestAddWorkingDays_SkipsHoliday(t *testing.T) {
	c := New()
	c.AddNonWorkingDate(tue)
	assert.Equal(t, domain.Date(2025, time.June, 11), c.AddWorkingDays(mon, 1, false))
}

func TestWorkingDaysBetween(t *testing.T) {
	c := New()
	assert.Equal(t, 5, c.WorkingDaysBetween(mon, fri, false))
	assert.Equal(t, 5, c.WorkingDaysBetween(mon, sun, false), "weekend days not counted")
	assert.Equal(t, 7, c.WorkingDaysBetween(mon, sun, true))
	assert.Equal(t, 0, c.WorkingDaysBetween(fri, mon, false), "inverted span")
}

func TestExpandDaysSelector_Weekdays(t *testing.T) {
	c := New()
	// Tuesdays for 3 weeks starting from Monday 2025-06-09.
	got, err := c.ExpandDaysSelector(mon, []int{2}, nil, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.True(t, got[tue])
	assert.True(t, got[domain.Date(2025, time.June, 17)])
	assert.True(t, got[domain.Date(2025, time.June, 24)])
}

func TestExpandDaysSelector_UnionsLiteralDates(t *testing.T) {
	c := New()
	holiday := domain.Date(2025, time.December, 25)
	got, err := c.ExpandDaysSelector(mon, []int{2}, []time.Time{holiday, tue}, 1)
	require.NoError(t, err)
	assert.Len(t, got, 2, "duplicate of projected Tuesday collapses")
	assert.True(t, got[holiday])
	assert.True(t, got[tue])
}

func TestExpandDaysSelector_EmptySelector(t *testing.T) {
	c := New()
	got, err := c.ExpandDaysSelector(mon, nil, nil, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpandDaysSelector_InvalidWeekday(t *testing.T) {
	c := New()
	for _, bad := range []int{0, 8, -1} {
		_, err := c.ExpandDaysSelector(mon, []int{bad}, nil, 1)
		require.Error(t, err, "weekday %d", bad)
		assert.ErrorIs(t, err, ErrInvalidWeekday)
	}
}

func TestNewWithNonWorking_InvalidWeekday(t *testing.T) {
	_, err := NewWithNonWorking([]int{9}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestNewWithNonWorking_RejectsAllWeekdaysOff(t *testing.T) {
	// Working-day arithmetic would scan forever on such a calendar.
	_, err := NewWithNonWorking([]int{1, 2, 3, 4, 5, 6, 7}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoWorkingDays)
}

func TestNewWithNonWorking_DuplicateWeekdaysNotAllOff(t *testing.T) {
	c, err := NewWithNonWorking([]int{6, 7, 6, 7, 6, 7, 6}, nil)
	require.NoError(t, err)
	assert.True(t, c.IsWorkingDay(mon))
}

func TestParse_File(t *testing.T) {
	yml := []byte("non_working_weekdays: [6, 7]\nnon_working_dates:\n  - 2025-06-10\n")
	c, err := Parse(yml)
	require.NoError(t, err)
	assert.False(t, c.IsWorkingDay(sat))
	assert.False(t, c.IsWorkingDay(tue))
	assert.True(t, c.IsWorkingDay(mon))
}

func TestParse_BadDate(t *testing.T) {
	_, err := Parse([]byte("non_working_dates: [\"June 10\"]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}
