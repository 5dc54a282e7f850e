package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoversDate(t *testing.T) {
	start := Date(2025, time.June, 9)  // Monday
	finish := Date(2025, time.June, 13) // Friday
	w := &WorkItem{StartDate: &start, FinishDate: &finish}

	cases := []struct {
		name   string
		date   time.Time
		covers bool
	}{
		{"before span", Date(2025, time.June, 8), false},
		{"start boundary", Date(2025, time.June, 9), true},
		{"inside span", Date(2025, time.June, 11), true},
		{"finish boundary", Date(2025, time.June, 13), true},
		{"after span", Date(2025, time.June, 14), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.covers, w.CoversDate(tc.date), tc.name)
	}
}

func TestCoversDate_MissingBounds(t *testing.T) {
	start := Date(2025, time.June, 9)
	w := &WorkItem{StartDate: &start}
	assert.False(t, w.CoversDate(start), "half-open span covers nothing")
	assert.False(t, (&WorkItem{}).CoversDate(start))
}

func TestSetSpan_RejectsInvertedDates(t *testing.T) {
	w := &WorkItem{}
	err := w.SetSpan(Date(2025, time.June, 13), Date(2025, time.June, 9))
	require.Error(t, err)
	assert.Nil(t, w.StartDate, "span should not change on error")
}

func TestSetSpan_NormalizesToMidnightUTC(t *testing.T) {
	w := &WorkItem{}
	loc := time.FixedZone("CET", 3600)
	require.NoError(t, w.SetSpan(
		time.Date(2025, time.June, 9, 15, 30, 0, 0, loc),
		time.Date(2025, time.June, 13, 8, 0, 0, 0, loc),
	))
	assert.Equal(t, Date(2025, time.June, 9), *w.StartDate)
	assert.Equal(t, Date(2025, time.June, 13), *w.FinishDate)
}

func TestValidate(t *testing.T) {
	dur := 0
	inverted := &WorkItem{ID: "a", Title: "t", SchedulingMode: SchedulingManual}
	s, f := Date(2025, time.June, 13), Date(2025, time.June, 9)
	inverted.StartDate, inverted.FinishDate = &s, &f

	cases := []struct {
		name    string
		item    *WorkItem
		wantErr int
	}{
		{"valid", &WorkItem{ID: "a", Title: "t", SchedulingMode: SchedulingAutomatic}, 0},
		{"missing title", &WorkItem{ID: "a", SchedulingMode: SchedulingManual}, 1},
		{"bad mode", &WorkItem{ID: "a", Title: "t", SchedulingMode: "sometimes"}, 1},
		{"zero duration", &WorkItem{ID: "a", Title: "t", SchedulingMode: SchedulingManual, DurationDays: &dur}, 1},
		{"inverted span", inverted, 1},
	}
	for _, tc := range cases {
		assert.Len(t, tc.item.Validate(), tc.wantErr, tc.name)
	}
}

func TestISOWeekday_RoundTrip(t *testing.T) {
	for iso := 1; iso <= 7; iso++ {
		assert.Equal(t, iso, ISOWeekday(WeekdayFromISO(iso)))
	}
	assert.Equal(t, 1, ISOWeekday(time.Monday))
	assert.Equal(t, 7, ISOWeekday(time.Sunday))
}

func TestDaysBetween(t *testing.T) {
	mon := Date(2025, time.June, 9)
	assert.Equal(t, 0, DaysBetween(mon, mon))
	assert.Equal(t, 4, DaysBetween(mon, Date(2025, time.June, 13)))
	assert.Equal(t, -2, DaysBetween(mon, Date(2025, time.June, 7)))
}

func TestRelationValidate(t *testing.T) {
	ok := &Relation{PredecessorID: "a", SuccessorID: "b", Lag: 3}
	assert.Empty(t, ok.Validate())

	self := &Relation{PredecessorID: "a", SuccessorID: "a"}
	require.NotEmpty(t, self.Validate())

	neg := &Relation{PredecessorID: "a", SuccessorID: "b", Lag: -1}
	require.Len(t, neg.Validate(), 1)
	assert.Contains(t, neg.Validate()[0].Error(), "lag")
}
