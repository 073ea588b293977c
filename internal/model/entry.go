package model

import (
	"time"

	"github.com/Tiliavir/planner-time-tracker/internal/planner"
)

// TimeEntry is a timesheet row derived from a remote task. Entries are
// rebuilt wholesale on every fetch and never mutated in place.
type TimeEntry struct {
	ID              string     `json:"id"`
	Timestamp       time.Time  `json:"timestamp"` // due date, else start date, else creation date
	Title           string     `json:"title"`
	Hours           float64    `json:"hours"` // 0 when no label decoded
	Bucket          string     `json:"bucket,omitempty"`
	Label           string     `json:"label,omitempty"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DueAt           *time.Time `json:"due_at,omitempty"`
	Priority        int        `json:"priority"`
	PercentComplete int        `json:"percent_complete"`
	// Task is the originating remote record, kept for its concurrency
	// token and for re-derivation. Not serialized.
	Task *planner.Task `json:"-"`
}

// DailyTimesheet is one day's worth of entries with its hour total.
// Recomputed on every aggregation, never persisted.
type DailyTimesheet struct {
	Date      time.Time   `json:"date"`
	DateLabel string      `json:"date_label"` // "2006-01-02"
	Weekday   string      `json:"weekday"`
	Entries   []TimeEntry `json:"entries"` // ascending by timestamp
	Total     float64     `json:"total_hours"`
}

// WeeklyTimesheet is a Monday-aligned week. Days always holds exactly
// seven consecutive DailyTimesheet values, Monday through Sunday;
// days without entries are present with an empty list and zero total.
type WeeklyTimesheet struct {
	WeekStart time.Time        `json:"week_start"`
	WeekEnd   time.Time        `json:"week_end"`
	Label     string           `json:"label"` // e.g. "2026-W09"
	Days      []DailyTimesheet `json:"days"`
	Total     float64          `json:"total_hours"`
}

// Commit is a version-control commit fetched from a repository.
type Commit struct {
	SHA       string    `json:"sha"`
	Repo      string    `json:"repo"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	URL       string    `json:"url,omitempty"`
}

// DraftEntry is an estimated time entry produced from one day's commits
// in one repository, awaiting user review before import. Hours and
// Selected are user-editable; everything else is derived.
type DraftEntry struct {
	Key      string   `json:"key"`  // "<date>|<repo>"
	Date     string   `json:"date"` // "2006-01-02"
	Repo     string   `json:"repo"`
	Summary  string   `json:"summary"`
	Hours    float64  `json:"hours"`
	Selected bool     `json:"selected"`
	Commits  []Commit `json:"commits"`
}
