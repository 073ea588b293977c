package timesheet

import (
	"sort"
	"time"

	"github.com/Tiliavir/planner-time-tracker/internal/model"
)

// GroupByDay partitions entries by calendar day and returns the days in
// ascending date order. Within a day, entries are ordered ascending by
// their exact timestamp. No entry is dropped or duplicated, and no
// empty days are emitted.
func GroupByDay(entries []model.TimeEntry) []model.DailyTimesheet {
	byDay := map[string][]model.TimeEntry{}
	var keys []string
	for _, e := range entries {
		key := DayKey(e.Timestamp)
		if _, seen := byDay[key]; !seen {
			keys = append(keys, key)
		}
		byDay[key] = append(byDay[key], e)
	}
	sort.Strings(keys)

	days := make([]model.DailyTimesheet, 0, len(keys))
	for _, key := range keys {
		group := byDay[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Timestamp.Before(group[j].Timestamp)
		})
		days = append(days, newDay(StartOfDay(group[0].Timestamp), group))
	}
	return days
}

// GroupByWeek partitions entries into Monday-aligned weeks in ascending
// order. Every week holds exactly seven days, Monday through Sunday;
// days without entries appear with an empty entry list and a zero
// total, so a week view is never sparse.
func GroupByWeek(entries []model.TimeEntry) []model.WeeklyTimesheet {
	byWeek := map[string][]model.TimeEntry{}
	mondays := map[string]time.Time{}
	var keys []string
	for _, e := range entries {
		monday, _ := WeekRange(e.Timestamp)
		key := DayKey(monday)
		if _, seen := byWeek[key]; !seen {
			keys = append(keys, key)
			mondays[key] = monday
		}
		byWeek[key] = append(byWeek[key], e)
	}
	sort.Strings(keys)

	weeks := make([]model.WeeklyTimesheet, 0, len(keys))
	for _, key := range keys {
		monday := mondays[key]
		_, sunday := WeekRange(monday)
		days := densify(monday, GroupByDay(byWeek[key]))

		var total float64
		for _, d := range days {
			total += d.Total
		}
		weeks = append(weeks, model.WeeklyTimesheet{
			WeekStart: monday,
			WeekEnd:   sunday,
			Label:     ISOWeekLabel(monday),
			Days:      days,
			Total:     total,
		})
	}
	return weeks
}

// FilterByRange returns the entries whose timestamp falls in the
// inclusive range [from, to]. The upper bound is the start of to's day
// plus exactly 23 hours, so same-day entries timestamped later in the
// day are kept; an entry in the final hour of that day is not.
func FilterByRange(entries []model.TimeEntry, from, to time.Time) []model.TimeEntry {
	lo := StartOfDay(from)
	hi := StartOfDay(to).Add(23 * time.Hour)

	var kept []model.TimeEntry
	for _, e := range entries {
		if e.Timestamp.Before(lo) || e.Timestamp.After(hi) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// densify expands a week's day groups to all seven days starting at
// monday, inserting empty placeholders where no entries exist.
func densify(monday time.Time, days []model.DailyTimesheet) []model.DailyTimesheet {
	existing := map[string]model.DailyTimesheet{}
	for _, d := range days {
		existing[d.DateLabel] = d
	}

	full := make([]model.DailyTimesheet, 0, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		if d, ok := existing[DayKey(date)]; ok {
			full = append(full, d)
			continue
		}
		full = append(full, newDay(date, []model.TimeEntry{}))
	}
	return full
}

// newDay builds a DailyTimesheet from already-sorted entries.
func newDay(date time.Time, entries []model.TimeEntry) model.DailyTimesheet {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return model.DailyTimesheet{
		Date:      date,
		DateLabel: DayKey(date),
		Weekday:   date.Weekday().String(),
		Entries:   entries,
		Total:     total,
	}
}
