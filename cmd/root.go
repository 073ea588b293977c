package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ptt",
	Short: "Planner Time Tracker – a timesheet CLI for Microsoft Planner",
	Long: `ptt turns Microsoft Planner tasks into a timesheet.
It reads tasks through the Microsoft Graph API, derives hour values from
applied category labels, and prints daily and weekly timesheets.
Commit history from GitHub repositories can be turned into draft entries
and imported back as Planner tasks.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(commitsCmd)
}
