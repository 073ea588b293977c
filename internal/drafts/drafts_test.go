package drafts_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/planner-time-tracker/internal/drafts"
	"github.com/Tiliavir/planner-time-tracker/internal/model"
)

func TestLoadNotExist(t *testing.T) {
	base := t.TempDir()
	_, ok, err := drafts.Load(base)
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if ok {
		t.Error("Load: expected ok=false for missing file")
	}
}

func TestSaveAndLoad(t *testing.T) {
	base := t.TempDir()

	file := drafts.File{
		FetchedAt: time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC),
		Since:     "2024-03-08",
		Drafts: []model.DraftEntry{
			{
				Key:      "2024-03-10|acme/api",
				Date:     "2024-03-10",
				Repo:     "acme/api",
				Summary:  "fix login, add tests",
				Hours:    2.5,
				Selected: true,
			},
		},
	}

	if err := drafts.Save(base, file); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok, err := drafts.Load(base)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if !ok {
		t.Fatal("Load: expected ok=true after save")
	}
	if len(loaded.Drafts) != 1 {
		t.Fatalf("Drafts = %d, want 1", len(loaded.Drafts))
	}
	if loaded.Drafts[0].Hours != 2.5 {
		t.Errorf("Hours = %v, want 2.5", loaded.Drafts[0].Hours)
	}
	if !loaded.Drafts[0].Selected {
		t.Error("Selected flag lost in round trip")
	}
	if loaded.Since != "2024-03-08" {
		t.Errorf("Since = %q, want %q", loaded.Since, "2024-03-08")
	}
}

func TestLoadCorruptBacksUp(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "drafts")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "pending.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := drafts.Load(base)
	if err == nil {
		t.Fatal("expected error for corrupt JSON, got nil")
	}

	if _, statErr := os.Stat(path + ".corrupt"); statErr != nil {
		t.Errorf("expected backup file: %v", statErr)
	}
}

func TestClear(t *testing.T) {
	base := t.TempDir()

	// Clearing with no file present is fine.
	if err := drafts.Clear(base); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}

	if err := drafts.Save(base, drafts.File{Since: "2024-03-08"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := drafts.Clear(base); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	_, ok, err := drafts.Load(base)
	if err != nil {
		t.Fatalf("Load after clear: %v", err)
	}
	if ok {
		t.Error("expected no draft file after Clear")
	}
}
