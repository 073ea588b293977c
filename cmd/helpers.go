package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Tiliavir/planner-time-tracker/internal/config"
	"github.com/Tiliavir/planner-time-tracker/internal/model"
	"github.com/Tiliavir/planner-time-tracker/internal/planner"
	"github.com/Tiliavir/planner-time-tracker/internal/timesheet"
)

// newPlannerClient loads the config and returns an authenticated client,
// running the device code flow when no valid token is stored.
func newPlannerClient(ctx context.Context) (*planner.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	tok, ocfg, err := planner.GetToken(ctx, cfg.Planner.TenantID, cfg.Planner.ClientID)
	if err != nil {
		return nil, cfg, fmt.Errorf("authentication failed: %w", err)
	}
	return planner.NewClient(ctx, tok, ocfg), cfg, nil
}

// fetchEntries pulls the user's tasks and bucket names and builds the
// entry list for this invocation. The bucket cache is scoped to the
// call; each fetch cycle starts fresh.
func fetchEntries(ctx context.Context, client *planner.Client, cfg config.Config) ([]model.TimeEntry, error) {
	tasks, err := client.MyTasks(ctx, cfg.Planner.LookbackMonths)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}

	if cfg.Planner.PlanID != "" {
		kept := tasks[:0]
		for _, t := range tasks {
			if t.PlanID == cfg.Planner.PlanID {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}

	cache := planner.NewBucketCache()
	for _, planID := range distinctPlans(tasks) {
		buckets, err := client.Buckets(ctx, planID)
		if err != nil {
			return nil, fmt.Errorf("fetching buckets for plan %s: %w", planID, err)
		}
		cache.PutAll(buckets)
	}

	return timesheet.BuildEntries(tasks, cache), nil
}

func distinctPlans(tasks []planner.Task) []string {
	seen := map[string]bool{}
	var plans []string
	for _, t := range tasks {
		if t.PlanID == "" || seen[t.PlanID] {
			continue
		}
		seen[t.PlanID] = true
		plans = append(plans, t.PlanID)
	}
	return plans
}

// nowInConfigZone returns the current time in the configured timezone,
// falling back to the system zone on an empty or bad setting.
func nowInConfigZone(cfg config.Config) time.Time {
	if cfg.Planner.Timezone == "" {
		return time.Now()
	}
	loc, err := time.LoadLocation(cfg.Planner.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid timezone %q: %v\n", cfg.Planner.Timezone, err)
		return time.Now()
	}
	return time.Now().In(loc)
}

// parseDateFlag parses a YYYY-MM-DD flag value, exiting on bad input.
func parseDateFlag(name, value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --%s value %q: %v\n", name, value, err)
		os.Exit(1)
	}
	return d
}
