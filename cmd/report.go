package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/planner-time-tracker/internal/hours"
	"github.com/Tiliavir/planner-time-tracker/internal/model"
	"github.com/Tiliavir/planner-time-tracker/internal/timesheet"
)

var (
	reportWeeks  int
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show weekly timesheets",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportWeeks, "weeks", 1, "Number of weeks to report, ending with the current week")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, cfg, err := newPlannerClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if reportWeeks < 1 {
		reportWeeks = 1
	}
	now := nowInConfigZone(cfg)
	monday, sunday := timesheet.WeekRange(now)
	from := monday.AddDate(0, 0, -7*(reportWeeks-1))

	entries, err := fetchEntries(ctx, client, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	weeks := timesheet.GroupByWeek(timesheet.FilterByRange(entries, from, sunday))

	switch reportFormat {
	case "json":
		data, err := json.MarshalIndent(weeks, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "csv":
		fmt.Println("week,date,weekday,hours,entries")
		for _, w := range weeks {
			for _, d := range w.Days {
				fmt.Printf("%s,%s,%s,%g,%d\n", w.Label, d.DateLabel, d.Weekday, d.Total, len(d.Entries))
			}
		}
	default: // md
		for _, w := range weeks {
			printWeek(w)
		}
	}

	return nil
}

func printWeek(w model.WeeklyTimesheet) {
	fmt.Printf("Week %s (%s – %s)\n", w.Label,
		w.WeekStart.Format("2006-01-02"), w.WeekEnd.Format("2006-01-02"))
	fmt.Println("--------------------------------")
	for _, d := range w.Days {
		total := "–"
		if d.Total > 0 {
			total = hours.FormatHours(d.Total)
		}
		fmt.Printf("%-10s%-12s%6s  (%d entries)\n",
			d.Weekday, d.DateLabel, total, len(d.Entries))
	}
	fmt.Println("--------------------------------")
	fmt.Printf("%-22s%6s\n", "Total", hours.FormatHours(w.Total))
	fmt.Println()
}
