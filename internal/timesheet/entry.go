package timesheet

import (
	"github.com/Tiliavir/planner-time-tracker/internal/hours"
	"github.com/Tiliavir/planner-time-tracker/internal/model"
	"github.com/Tiliavir/planner-time-tracker/internal/planner"
)

// BuildEntry converts a remote task plus its resolved bucket name into
// a timesheet entry. Pure transform over already-fetched data.
//
// The entry date is the due date when present, else the start date,
// else the creation date (always present on a valid task). The title is
// copied verbatim; display is responsible for any trimming. Hours are 0
// when no label decodes.
func BuildEntry(task *planner.Task, bucketName string) model.TimeEntry {
	e := model.TimeEntry{
		ID:              task.ID,
		Title:           task.Title,
		Bucket:          bucketName,
		Completed:       task.PercentComplete == 100,
		CompletedAt:     task.CompletedAt,
		DueAt:           task.DueAt,
		Priority:        task.Priority,
		PercentComplete: task.PercentComplete,
		Task:            task,
	}

	if d, ok := hours.Decode(task.AppliedCategories); ok {
		e.Hours = d.Hours
		e.Label = d.Label
	}

	switch {
	case task.DueAt != nil:
		e.Timestamp = *task.DueAt
	case task.StartAt != nil:
		e.Timestamp = *task.StartAt
	default:
		e.Timestamp = task.CreatedAt
	}

	return e
}

// BuildEntries maps a fetched task list to entries, resolving bucket
// names through the given cache.
func BuildEntries(tasks []planner.Task, buckets *planner.BucketCache) []model.TimeEntry {
	entries := make([]model.TimeEntry, 0, len(tasks))
	for i := range tasks {
		entries = append(entries, BuildEntry(&tasks[i], buckets.Name(tasks[i].BucketID)))
	}
	return entries
}
