// Package drafts persists the pending commit-draft set between
// `ptt commits fetch` and `ptt commits import`, so the user can edit
// hours and toggle selection in the file before importing.
package drafts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Tiliavir/planner-time-tracker/internal/model"
)

// File is the on-disk draft set.
type File struct {
	FetchedAt time.Time          `json:"fetched_at"`
	Since     string             `json:"since"` // "2006-01-02"
	Drafts    []model.DraftEntry `json:"drafts"`
}

// BaseDir returns the root data directory (~/.ptt).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ptt"), nil
}

func draftFilePath(base string) string {
	return filepath.Join(base, "drafts", "pending.json")
}

// Load reads the pending draft file. The second return is false when no
// draft file exists.
func Load(base string) (File, bool, error) {
	path := draftFilePath(base)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return File{}, false, nil
	}
	if err != nil {
		return File{}, false, fmt.Errorf("drafts error reading %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return File{}, false, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return f, true, nil
}

// Save atomically writes the pending draft file.
func Save(base string, f File) error {
	path := draftFilePath(base)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("drafts error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("drafts error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("drafts error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("drafts error renaming temp file: %w", err)
	}
	return nil
}

// Clear removes the pending draft file. A missing file is not an error.
func Clear(base string) error {
	path := draftFilePath(base)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("drafts error removing %s: %w", path, err)
	}
	return nil
}
