package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/planner-time-tracker/internal/hours"
	"github.com/Tiliavir/planner-time-tracker/internal/model"
	"github.com/Tiliavir/planner-time-tracker/internal/timesheet"
)

var (
	listToday bool
	listWeek  bool
	listDate  string
	listFrom  string
	listTo    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List time entries derived from Planner tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listToday, "today", false, "Show today's entries")
	listCmd.Flags().BoolVar(&listWeek, "week", false, "Show this week's entries (default)")
	listCmd.Flags().StringVar(&listDate, "date", "", "Show a specific date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listFrom, "from", "", "Range start (YYYY-MM-DD); required when --to is specified")
	listCmd.Flags().StringVar(&listTo, "to", "", "Range end (YYYY-MM-DD); defaults to today")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, cfg, err := newPlannerClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	now := nowInConfigZone(cfg)
	var from, to time.Time
	switch {
	case listDate != "":
		d := parseDateFlag("date", listDate)
		from, to = d, d
	case listFrom != "" || listTo != "":
		if listTo != "" && listFrom == "" {
			fmt.Fprintln(os.Stderr, "--from is required when --to is specified")
			os.Exit(1)
		}
		from = parseDateFlag("from", listFrom)
		to = now
		if listTo != "" {
			to = parseDateFlag("to", listTo)
		}
	case listWeek:
		from, to = timesheet.WeekRange(now)
	case listToday:
		from, to = now, now
	default:
		// Default: this week.
		from, to = timesheet.WeekRange(now)
	}

	entries, err := fetchEntries(ctx, client, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	printDays(timesheet.GroupByDay(timesheet.FilterByRange(entries, from, to)))
	return nil
}

// printDays prints day groups with per-day hour totals.
func printDays(days []model.DailyTimesheet) {
	if len(days) == 0 {
		fmt.Println("No entries found.")
		return
	}

	for _, day := range days {
		fmt.Printf("%s (%s)\n", day.DateLabel, day.Weekday)
		for _, e := range day.Entries {
			fmt.Println("  " + formatEntry(e))
		}
		fmt.Printf("  Total: %s\n", hours.FormatHours(day.Total))
	}
}

// formatEntry renders one entry line, e.g. "✓ 3h  Review PRs [Ops]".
func formatEntry(e model.TimeEntry) string {
	mark := "·"
	if e.Completed {
		mark = "✓"
	}
	label := e.Label
	if label == "" {
		label = "–"
	}
	bucket := ""
	if e.Bucket != "" {
		bucket = fmt.Sprintf(" [%s]", e.Bucket)
	}
	return fmt.Sprintf("%s %-5s %s%s", mark, label, e.Title, bucket)
}
