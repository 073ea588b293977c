package timesheet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/planner-time-tracker/internal/model"
	"github.com/Tiliavir/planner-time-tracker/internal/timesheet"
)

func entry(id string, ts time.Time, hours float64) model.TimeEntry {
	return model.TimeEntry{ID: id, Timestamp: ts, Title: id, Hours: hours}
}

func TestGroupByDayOrdering(t *testing.T) {
	entries := []model.TimeEntry{
		entry("c", time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC), 1),
		entry("a", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), 2),
		entry("b", time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC), 0.5),
	}

	days := timesheet.GroupByDay(entries)
	require.Len(t, days, 2)

	// Days ascending by date.
	assert.Equal(t, "2024-03-10", days[0].DateLabel)
	assert.Equal(t, "2024-03-12", days[1].DateLabel)

	// Within a day, entries ascending by exact timestamp.
	require.Len(t, days[1].Entries, 2)
	assert.Equal(t, "b", days[1].Entries[0].ID)
	assert.Equal(t, "c", days[1].Entries[1].ID)

	assert.Equal(t, 2.0, days[0].Total)
	assert.Equal(t, 1.5, days[1].Total)
	assert.Equal(t, "Sunday", days[0].Weekday)
}

func TestGroupByDayFlattenIsLossless(t *testing.T) {
	entries := []model.TimeEntry{
		entry("a", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), 2),
		entry("b", time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC), 0.5),
		entry("c", time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC), 1),
		entry("d", time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC), 1), // same timestamp as c
	}

	var flat []string
	for _, d := range timesheet.GroupByDay(entries) {
		for _, e := range d.Entries {
			flat = append(flat, e.ID)
		}
	}
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, flat)
}

func TestGroupByWeekDensifies(t *testing.T) {
	// Two entries in one week, one in the next.
	entries := []model.TimeEntry{
		entry("a", time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC), 3),   // Tue, week of Mar 11
		entry("b", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), 1),   // Fri, week of Mar 11
		entry("c", time.Date(2024, 3, 19, 9, 0, 0, 0, time.UTC), 0.5), // Tue, week of Mar 18
	}

	weeks := timesheet.GroupByWeek(entries)
	require.Len(t, weeks, 2)

	// Ascending week order.
	assert.Equal(t, "2024-03-11", timesheet.DayKey(weeks[0].WeekStart))
	assert.Equal(t, "2024-03-18", timesheet.DayKey(weeks[1].WeekStart))

	for _, w := range weeks {
		require.Len(t, w.Days, 7, "a week must always show 7 days")
		assert.Equal(t, time.Monday, w.Days[0].Date.Weekday())
		assert.Equal(t, time.Sunday, w.Days[6].Date.Weekday())

		var daySum float64
		for i, d := range w.Days {
			require.NotNil(t, d.Entries, "empty days carry an empty list, not nil")
			if i > 0 {
				assert.Equal(t, w.Days[i-1].Date.AddDate(0, 0, 1), d.Date, "days must be consecutive")
			}
			daySum += d.Total
		}
		assert.Equal(t, w.Total, daySum, "week total equals sum of daily totals")
	}

	assert.Equal(t, 4.0, weeks[0].Total)
	assert.Equal(t, 0.5, weeks[1].Total)

	// Wednesday of the first week has no entries but is present.
	wed := weeks[0].Days[2]
	assert.Equal(t, "2024-03-13", wed.DateLabel)
	assert.Empty(t, wed.Entries)
	assert.Zero(t, wed.Total)
}

func TestFilterByRange(t *testing.T) {
	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

	entries := []model.TimeEntry{
		entry("at-start", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 1),
		entry("mid", time.Date(2024, 3, 11, 13, 0, 0, 0, time.UTC), 1),
		entry("end-day-evening", time.Date(2024, 3, 12, 22, 59, 0, 0, time.UTC), 1),
		entry("end-day-last-hour", time.Date(2024, 3, 12, 23, 30, 0, 0, time.UTC), 1),
		entry("before", time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC), 1),
		entry("day-after", time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC), 1),
	}

	got := timesheet.FilterByRange(entries, from, to)

	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	// The upper bound is to's midnight plus exactly 23 hours, so an
	// entry in the final hour of the end day falls outside the range.
	assert.Equal(t, []string{"at-start", "mid", "end-day-evening"}, ids)
}
