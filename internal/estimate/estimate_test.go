package estimate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/planner-time-tracker/internal/estimate"
	"github.com/Tiliavir/planner-time-tracker/internal/model"
)

func commit(repo, author, message string, ts time.Time) model.Commit {
	return model.Commit{
		SHA:       "sha-" + ts.Format("150405"),
		Repo:      repo,
		Author:    author,
		Message:   message,
		Timestamp: ts,
	}
}

func autoRepo() map[string]estimate.RepoConfig {
	return map[string]estimate.RepoConfig{
		"acme/api": {AutoCalculate: true},
	}
}

func at(day int, hour, min int) time.Time {
	return time.Date(2024, 3, day, hour, min, 0, 0, time.UTC)
}

func TestSingleCommitEstimate(t *testing.T) {
	drafts := estimate.DraftEntries([]model.Commit{
		commit("acme/api", "Ann", "fix build", at(10, 9, 0)),
	}, autoRepo())

	require.Len(t, drafts, 1)
	assert.Equal(t, 2.0, drafts[0].Hours, "a lone commit is worth a fixed 2 hours")
}

func TestShortGapClampsToMinimum(t *testing.T) {
	// Two commits 10 minutes apart: gap clamps up to 15, plus the fixed
	// 30-minute wrap-up = 45 minutes, rounding to half an hour.
	drafts := estimate.DraftEntries([]model.Commit{
		commit("acme/api", "Ann", "wip", at(10, 9, 0)),
		commit("acme/api", "Ann", "done", at(10, 9, 10)),
	}, autoRepo())

	require.Len(t, drafts, 1)
	assert.Equal(t, 0.5, drafts[0].Hours)
}

func TestLongGapClampsToMaximum(t *testing.T) {
	// Six hours apart: gap caps at 240, plus 30 = 270 minutes = 4.5h.
	drafts := estimate.DraftEntries([]model.Commit{
		commit("acme/api", "Ann", "start", at(10, 9, 0)),
		commit("acme/api", "Ann", "finish", at(10, 15, 0)),
	}, autoRepo())

	require.Len(t, drafts, 1)
	assert.Equal(t, 4.5, drafts[0].Hours)
}

func TestThreeCommitScenario(t *testing.T) {
	// 09:00, 09:20, 14:00 → gaps 20 (unclamped) and 280→240, plus 30
	// = 290 minutes → 4.833h rounds to 5.0.
	drafts := estimate.DraftEntries([]model.Commit{
		commit("acme/api", "Ann", "a", at(10, 9, 0)),
		commit("acme/api", "Ann", "b", at(10, 9, 20)),
		commit("acme/api", "Ann", "c", at(10, 14, 0)),
	}, autoRepo())

	require.Len(t, drafts, 1)
	assert.Equal(t, 5.0, drafts[0].Hours)
}

func TestEstimateCapsAtFullDay(t *testing.T) {
	// Many wide gaps would exceed 8 hours; the cap applies after
	// rounding.
	commits := []model.Commit{}
	for i := 0; i < 4; i++ {
		commits = append(commits, commit("acme/api", "Ann", "c", at(10, 4*i, 0)))
	}
	drafts := estimate.DraftEntries(commits, autoRepo())

	require.Len(t, drafts, 1)
	assert.Equal(t, 8.0, drafts[0].Hours)
}

func TestManualRepoUsesDefaultHoursVerbatim(t *testing.T) {
	repos := map[string]estimate.RepoConfig{
		"acme/api": {AutoCalculate: false, DefaultHours: 9.75},
	}
	drafts := estimate.DraftEntries([]model.Commit{
		commit("acme/api", "Ann", "a", at(10, 9, 0)),
		commit("acme/api", "Ann", "b", at(10, 17, 0)),
	}, repos)

	require.Len(t, drafts, 1)
	// No clamping or rounding for a manually configured default.
	assert.Equal(t, 9.75, drafts[0].Hours)
}

func TestGroupingAndDescendingOrder(t *testing.T) {
	repos := map[string]estimate.RepoConfig{
		"acme/api": {AutoCalculate: true},
		"acme/web": {AutoCalculate: true},
	}
	drafts := estimate.DraftEntries([]model.Commit{
		commit("acme/api", "Ann", "old", at(10, 9, 0)),
		commit("acme/web", "Ann", "web", at(11, 9, 0)),
		commit("acme/api", "Ann", "new", at(12, 9, 0)),
	}, repos)

	require.Len(t, drafts, 3)
	// Most recent day first — the opposite of the timesheet views.
	assert.Equal(t, "2024-03-12", drafts[0].Date)
	assert.Equal(t, "2024-03-11", drafts[1].Date)
	assert.Equal(t, "2024-03-10", drafts[2].Date)

	for _, d := range drafts {
		assert.True(t, d.Selected, "drafts default to selected")
		assert.Equal(t, d.Date+"|"+d.Repo, d.Key)
	}
}

func TestSummaryJoinsFirstLines(t *testing.T) {
	drafts := estimate.DraftEntries([]model.Commit{
		commit("acme/api", "Ann", "fix login\n\nlong body here", at(10, 9, 0)),
		commit("acme/api", "Ann", "add tests", at(10, 10, 0)),
	}, autoRepo())

	require.Len(t, drafts, 1)
	assert.Equal(t, "fix login, add tests", drafts[0].Summary)
}

func TestAuthorFilter(t *testing.T) {
	repos := map[string]estimate.RepoConfig{
		"acme/api": {AutoCalculate: true, Author: "ann"},
	}
	drafts := estimate.DraftEntries([]model.Commit{
		commit("acme/api", "Ann Smith", "mine", at(10, 9, 0)),
		commit("acme/api", "Bob Jones", "not mine", at(10, 9, 5)),
		commit("acme/api", "ANNELIESE", "also matches", at(10, 11, 0)),
	}, repos)

	// Bob's commit is dropped before grouping: it contributes no gap
	// and appears in no draft.
	require.Len(t, drafts, 1)
	require.Len(t, drafts[0].Commits, 2)
	assert.Equal(t, "mine, also matches", drafts[0].Summary)
}

func TestAuthorFilterCanEmptyResult(t *testing.T) {
	repos := map[string]estimate.RepoConfig{
		"acme/api": {AutoCalculate: true, Author: "nobody"},
	}
	drafts := estimate.DraftEntries([]model.Commit{
		commit("acme/api", "Ann", "a", at(10, 9, 0)),
	}, repos)

	// A legitimate empty result, not an error.
	assert.Empty(t, drafts)
}

func TestOverbooked(t *testing.T) {
	repos := map[string]estimate.RepoConfig{
		"acme/api": {AutoCalculate: false, DefaultHours: 6},
		"acme/web": {AutoCalculate: false, DefaultHours: 6},
	}
	drafts := estimate.DraftEntries([]model.Commit{
		commit("acme/api", "Ann", "a", at(10, 9, 0)),
		commit("acme/web", "Ann", "b", at(10, 10, 0)),
		commit("acme/api", "Ann", "c", at(11, 9, 0)),
	}, repos)

	// Unselecting a draft must not change the advisory totals.
	for i := range drafts {
		drafts[i].Selected = false
	}

	over := estimate.Overbooked(drafts)
	require.Len(t, over, 1)
	assert.Equal(t, "2024-03-10", over[0].Date)
	assert.Equal(t, 12.0, over[0].Hours)
}
