package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/planner-time-tracker/internal/config"
	"github.com/Tiliavir/planner-time-tracker/internal/drafts"
	"github.com/Tiliavir/planner-time-tracker/internal/estimate"
	"github.com/Tiliavir/planner-time-tracker/internal/github"
	"github.com/Tiliavir/planner-time-tracker/internal/hours"
	"github.com/Tiliavir/planner-time-tracker/internal/model"
	"github.com/Tiliavir/planner-time-tracker/internal/planner"
)

var (
	commitsSince string
	importDryRun bool
	importPlan   string
	importBucket string
)

var commitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "Draft time entries from repository commits",
}

var commitsFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch commits and write estimated draft entries for review",
	Args:  cobra.NoArgs,
	RunE:  runCommitsFetch,
}

var commitsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Create a Planner task for each selected draft entry",
	Args:  cobra.NoArgs,
	RunE:  runCommitsImport,
}

func init() {
	commitsFetchCmd.Flags().StringVar(&commitsSince, "since", "", "Fetch commits since this date (YYYY-MM-DD); defaults to 7 days ago")
	commitsImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Print planned tasks without creating them")
	commitsImportCmd.Flags().StringVar(&importPlan, "plan", "", "Plan ID (defaults to planner.plan_id from config)")
	commitsImportCmd.Flags().StringVar(&importBucket, "bucket", "", "Bucket ID for created tasks")
	commitsCmd.AddCommand(commitsFetchCmd)
	commitsCmd.AddCommand(commitsImportCmd)
}

// repoPolicies builds the estimator's per-repo config, applying the
// global author filter where a repo has none of its own.
func repoPolicies(cfg config.Config) map[string]estimate.RepoConfig {
	policies := map[string]estimate.RepoConfig{}
	for _, r := range cfg.Repos {
		author := r.Author
		if author == "" {
			author = cfg.GitHub.Author
		}
		policies[r.Name] = estimate.RepoConfig{
			AutoCalculate: r.AutoCalculate,
			DefaultHours:  r.DefaultHours,
			Author:        author,
		}
	}
	return policies
}

func runCommitsFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(cfg.Repos) == 0 {
		fmt.Fprintln(os.Stderr, "no repositories configured: add entries to \"repos\" in the config")
		os.Exit(1)
	}

	since := nowInConfigZone(cfg).AddDate(0, 0, -7)
	if commitsSince != "" {
		since = parseDateFlag("since", commitsSince)
	}

	gh := github.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Token)
	var commits []model.Commit
	for _, r := range cfg.Repos {
		cs, err := gh.Commits(ctx, r.Name, since)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		commits = append(commits, cs...)
	}

	entries := estimate.DraftEntries(commits, repoPolicies(cfg))
	if len(entries) == 0 {
		// Distinct from a fetch failure: the repos had no matching
		// commits in the window (possibly due to the author filter).
		fmt.Println("No matching commits found; nothing to draft.")
		return nil
	}

	base, err := drafts.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	file := drafts.File{
		FetchedAt: time.Now(),
		Since:     since.Format("2006-01-02"),
		Drafts:    entries,
	}
	if err := drafts.Save(base, file); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	printDrafts(entries)

	for _, day := range estimate.Overbooked(entries) {
		fmt.Printf("Warning: %s totals %s across drafts – more than a full day\n",
			day.Date, hours.FormatHours(day.Hours))
	}
	fmt.Println()
	fmt.Println("Drafts saved. Edit hours or \"selected\" flags in the draft file if needed,")
	fmt.Println("then run: ptt commits import")
	return nil
}

func runCommitsImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	base, err := drafts.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	file, ok, err := drafts.Load(base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !ok || len(file.Drafts) == 0 {
		fmt.Fprintln(os.Stderr, "no pending drafts: run \"ptt commits fetch\" first")
		os.Exit(1)
	}

	client, cfg, err := newPlannerClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	planID := importPlan
	if planID == "" {
		planID = cfg.Planner.PlanID
	}
	if planID == "" {
		fmt.Fprintln(os.Stderr, "no plan: pass --plan or set planner.plan_id in the config")
		os.Exit(1)
	}

	created, skipped := 0, 0
	for _, d := range file.Drafts {
		if !d.Selected {
			skipped++
			continue
		}

		spec := taskSpecForDraft(d, planID, importBucket)
		if importDryRun {
			fmt.Printf("  would create: %s (%s)\n", spec.Title, hours.FormatHours(d.Hours))
			created++
			continue
		}
		if _, err := client.CreateTask(ctx, spec); err != nil {
			exitOnAPIError(err)
		}
		fmt.Printf("  ✓ Created: %s (%s)\n", spec.Title, hours.FormatHours(d.Hours))
		created++
	}

	if !importDryRun {
		if err := drafts.Clear(base); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	fmt.Println()
	fmt.Printf("Summary: %d created, %d skipped\n", created, skipped)
	return nil
}

// taskSpecForDraft turns a draft into a creatable task. The hour value
// becomes a category label when it matches the fixed table; otherwise
// the hours are noted in the title so they are not lost.
func taskSpecForDraft(d model.DraftEntry, planID, bucketID string) planner.TaskSpec {
	title := fmt.Sprintf("%s: %s", d.Repo, d.Summary)
	spec := planner.TaskSpec{
		PlanID:   planID,
		BucketID: bucketID,
		Title:    title,
	}
	if due, err := time.Parse("2006-01-02", d.Date); err == nil {
		due = due.UTC()
		spec.DueAt = &due
	}
	if id, ok := hours.CategoryFor(d.Hours); ok {
		spec.AppliedCategories = planner.CategoryFlags{{ID: id, Applied: true}}
	} else if d.Hours > 0 {
		spec.Title = fmt.Sprintf("%s (%s)", title, hours.FormatHours(d.Hours))
	}
	return spec
}

func printDrafts(entries []model.DraftEntry) {
	for _, d := range entries {
		fmt.Printf("%s  %-30s %6s  %d commits\n",
			d.Date, d.Repo, hours.FormatHours(d.Hours), len(d.Commits))
		fmt.Printf("    %s\n", d.Summary)
	}
}
