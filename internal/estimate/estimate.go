// Package estimate turns commit lists into draft time entries using a
// gap-based hour heuristic.
package estimate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Tiliavir/planner-time-tracker/internal/model"
	"github.com/Tiliavir/planner-time-tracker/internal/timesheet"
)

const (
	// singleCommitHours is credited when a day has exactly one commit.
	singleCommitHours = 2.0
	// Gap clamp bounds, in minutes. A gap below the minimum still
	// credits 15 minutes; a gap above the maximum is assumed to span a
	// break or unrelated work and is capped.
	minGapMinutes = 15
	maxGapMinutes = 240
	// wrapUpMinutes accounts for the final commit's own work.
	wrapUpMinutes = 30
	// maxDayHours caps an auto-calculated estimate.
	maxDayHours = 8.0
)

// RepoConfig is the per-repository estimation policy.
type RepoConfig struct {
	// AutoCalculate selects the gap heuristic; when false, DefaultHours
	// is used verbatim, with no clamping.
	AutoCalculate bool
	DefaultHours  float64
	// Author, when non-empty, keeps only commits whose author name
	// contains it (case-insensitive substring).
	Author string
}

// DraftEntries groups commits by calendar day and repository and
// estimates hours per group. Drafts come back sorted by date
// descending (most recent first) with Selected defaulting to true.
//
// Commits whose author does not match the repo's configured author
// filter are discarded before grouping, so they neither contribute to
// gaps nor appear in any draft.
func DraftEntries(commits []model.Commit, repos map[string]RepoConfig) []model.DraftEntry {
	grouped := map[string][]model.Commit{}
	var keys []string
	for _, c := range commits {
		cfg := repos[c.Repo]
		if !authorMatches(c.Author, cfg.Author) {
			continue
		}
		key := fmt.Sprintf("%s|%s", timesheet.DayKey(c.Timestamp), c.Repo)
		if _, seen := grouped[key]; !seen {
			keys = append(keys, key)
		}
		// Arrival order is kept for the message summary.
		grouped[key] = append(grouped[key], c)
	}

	// Date descending, repo ascending within a date. The opposite of
	// the timesheet aggregator: commit review favours recency.
	sort.Slice(keys, func(i, j int) bool {
		di, ri, _ := strings.Cut(keys[i], "|")
		dj, rj, _ := strings.Cut(keys[j], "|")
		if di != dj {
			return di > dj
		}
		return ri < rj
	})

	drafts := make([]model.DraftEntry, 0, len(keys))
	for _, key := range keys {
		group := grouped[key]
		date, repo, _ := strings.Cut(key, "|")
		cfg := repos[repo]

		h := cfg.DefaultHours
		if cfg.AutoCalculate {
			h = estimateHours(group)
		}

		drafts = append(drafts, model.DraftEntry{
			Key:      key,
			Date:     date,
			Repo:     repo,
			Summary:  summarize(group),
			Hours:    h,
			Selected: true,
			Commits:  group,
		})
	}
	return drafts
}

// estimateHours runs the gap heuristic over one day's commits in one
// repository. Each inter-commit gap is clamped to [15, 240] minutes,
// a fixed 30 minutes covers the final commit's own work, and the total
// is rounded to the nearest half hour only at the end, capped at 8.
func estimateHours(commits []model.Commit) float64 {
	switch len(commits) {
	case 0:
		return 0
	case 1:
		return singleCommitHours
	}

	ordered := make([]model.Commit, len(commits))
	copy(ordered, commits)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	totalMinutes := float64(wrapUpMinutes)
	for i := 1; i < len(ordered); i++ {
		gap := ordered[i].Timestamp.Sub(ordered[i-1].Timestamp).Minutes()
		if gap < minGapMinutes {
			gap = minGapMinutes
		}
		if gap > maxGapMinutes {
			gap = maxGapMinutes
		}
		totalMinutes += gap
	}

	h := timesheet.RoundToHalf(totalMinutes / 60)
	if h > maxDayHours {
		h = maxDayHours
	}
	return h
}

// summarize joins the first line of each commit message with ", " in
// original order.
func summarize(commits []model.Commit) string {
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		line, _, _ := strings.Cut(c.Message, "\n")
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.Join(lines, ", ")
}

func authorMatches(author, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(author), strings.ToLower(filter))
}

// DayTotal is one day's combined draft hours.
type DayTotal struct {
	Date  string
	Hours float64
}

// Overbooked scans drafts and returns the days whose combined hours
// exceed a full working day. All drafts count, selected or not; the
// result is advisory and never mutates estimates. Days come back in
// ascending date order.
func Overbooked(drafts []model.DraftEntry) []DayTotal {
	totals := map[string]float64{}
	var dates []string
	for _, d := range drafts {
		if _, seen := totals[d.Date]; !seen {
			dates = append(dates, d.Date)
		}
		totals[d.Date] += d.Hours
	}
	sort.Strings(dates)

	var over []DayTotal
	for _, date := range dates {
		if totals[date] > maxDayHours {
			over = append(over, DayTotal{Date: date, Hours: totals[date]})
		}
	}
	return over
}
