package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/planner-time-tracker/internal/model"
	"github.com/Tiliavir/planner-time-tracker/internal/timesheet"
)

var (
	exportFrom   string
	exportTo     string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export time entries to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Range start (YYYY-MM-DD); defaults to this week's Monday")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Range end (YYYY-MM-DD); defaults to today")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, cfg, err := newPlannerClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	now := nowInConfigZone(cfg)
	from, _ := timesheet.WeekRange(now)
	to := now
	if exportFrom != "" {
		from = parseDateFlag("from", exportFrom)
	}
	if exportTo != "" {
		to = parseDateFlag("to", exportTo)
	}

	entries, err := fetchEntries(ctx, client, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	entries = timesheet.FilterByRange(entries, from, to)

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "md":
		printDays(timesheet.GroupByDay(entries))
	default: // csv
		printCSV(entries)
	}

	return nil
}

func printCSV(entries []model.TimeEntry) {
	fmt.Println("date,title,bucket,label,hours,completed,due")
	for _, e := range entries {
		due := ""
		if e.DueAt != nil {
			due = e.DueAt.Format(time.RFC3339)
		}
		fmt.Printf("%s,%s,%s,%s,%g,%t,%s\n",
			csvEscape(e.Timestamp.Format("2006-01-02")),
			csvEscape(e.Title),
			csvEscape(e.Bucket),
			csvEscape(e.Label),
			e.Hours,
			e.Completed,
			csvEscape(due),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
