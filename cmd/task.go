package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/planner-time-tracker/internal/hours"
	"github.com/Tiliavir/planner-time-tracker/internal/planner"
)

var (
	taskAddHours  float64
	taskAddDue    string
	taskAddBucket string
	taskAddPlan   string

	taskEditTitle string
	taskEditHours float64
	taskEditDue   string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Create, complete, edit, and delete Planner tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit a task's title, hours, or due date",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

func init() {
	taskAddCmd.Flags().Float64Var(&taskAddHours, "hours", 0, "Hour value (0.5 steps); applied as a category label when possible")
	taskAddCmd.Flags().StringVar(&taskAddDue, "due", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVar(&taskAddBucket, "bucket", "", "Bucket ID")
	taskAddCmd.Flags().StringVar(&taskAddPlan, "plan", "", "Plan ID (defaults to planner.plan_id from config)")

	taskEditCmd.Flags().StringVar(&taskEditTitle, "title", "", "New title")
	taskEditCmd.Flags().Float64Var(&taskEditHours, "hours", 0, "New hour value (0.5 steps)")
	taskEditCmd.Flags().StringVar(&taskEditDue, "due", "", "New due date (YYYY-MM-DD)")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, cfg, err := newPlannerClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	planID := taskAddPlan
	if planID == "" {
		planID = cfg.Planner.PlanID
	}
	if planID == "" {
		fmt.Fprintln(os.Stderr, "no plan: pass --plan or set planner.plan_id in the config")
		os.Exit(1)
	}

	spec := planner.TaskSpec{
		PlanID:   planID,
		BucketID: taskAddBucket,
		Title:    args[0],
	}
	if taskAddDue != "" {
		due := parseDateFlag("due", taskAddDue).UTC()
		spec.DueAt = &due
	}
	if taskAddHours > 0 {
		spec.AppliedCategories = categoriesFor(taskAddHours, args[0])
	}

	created, err := client.CreateTask(ctx, spec)
	if err != nil {
		exitOnAPIError(err)
	}
	fmt.Printf("Created task %s: %s\n", created.ID, created.Title)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, _, err := newPlannerClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	task, err := client.GetTask(ctx, args[0])
	if err != nil {
		exitOnAPIError(err)
	}

	done := 100
	patch := planner.TaskPatch{PercentComplete: &done}
	if err := client.UpdateTask(ctx, task.ID, patch, task.ETag); err != nil {
		exitOnAPIError(err)
	}
	fmt.Printf("Completed: %s\n", task.Title)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, _, err := newPlannerClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	task, err := client.GetTask(ctx, args[0])
	if err != nil {
		exitOnAPIError(err)
	}

	var patch planner.TaskPatch
	changed := false
	if taskEditTitle != "" {
		patch.Title = &taskEditTitle
		changed = true
	}
	if taskEditDue != "" {
		due := parseDateFlag("due", taskEditDue).UTC()
		patch.DueAt = &due
		changed = true
	}
	if taskEditHours > 0 {
		patch.AppliedCategories = categoriesFor(taskEditHours, task.Title)
		changed = true
	}
	if !changed {
		fmt.Fprintln(os.Stderr, "nothing to change: pass --title, --hours, or --due")
		os.Exit(1)
	}

	if err := client.UpdateTask(ctx, task.ID, patch, task.ETag); err != nil {
		exitOnAPIError(err)
	}
	fmt.Printf("Updated: %s\n", task.Title)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, _, err := newPlannerClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	task, err := client.GetTask(ctx, args[0])
	if err != nil {
		exitOnAPIError(err)
	}

	if err := client.DeleteTask(ctx, task.ID, task.ETag); err != nil {
		exitOnAPIError(err)
	}
	fmt.Printf("Deleted: %s\n", task.Title)
	return nil
}

// categoriesFor maps an hour value to a category flag. Values outside
// the fixed table cannot be labelled; the caller is warned and the task
// is created without an hour label.
func categoriesFor(h float64, title string) planner.CategoryFlags {
	id, ok := hours.CategoryFor(h)
	if !ok {
		fmt.Fprintf(os.Stderr, "Warning: no category label for %gh, %q will carry no hour value\n", h, title)
		return nil
	}
	return planner.CategoryFlags{{ID: id, Applied: true}}
}

// exitOnAPIError prints a failure and exits. Concurrency conflicts get
// a distinct message: the token was stale and the user must re-run to
// retry against fresh data. There is no automatic retry.
func exitOnAPIError(err error) {
	switch {
	case errors.Is(err, planner.ErrConflict):
		fmt.Fprintln(os.Stderr, "The task changed remotely since it was read. Re-run the command to retry against the current version.")
	case errors.Is(err, planner.ErrNotFound):
		fmt.Fprintln(os.Stderr, "Task not found.")
	case errors.Is(err, planner.ErrRateLimited):
		fmt.Fprintln(os.Stderr, "Rate limited by the Planner API. Wait a moment and try again.")
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
