package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for ptt, stored in ~/.ptt/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Planner PlannerConfig `json:"planner"`
	GitHub  GitHubConfig  `json:"github"`
	Repos   []RepoConfig  `json:"repos"`
}

// PlannerConfig holds Microsoft Graph / Planner settings.
type PlannerConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// PlanID restricts the timesheet to one plan. Empty = all plans.
	PlanID string `json:"plan_id"`
	// LookbackMonths bounds how far back completed tasks are fetched.
	LookbackMonths int `json:"lookback_months"`
	// Timezone is the IANA timezone for date grouping (e.g. "Europe/Berlin"). Empty = local.
	Timezone string `json:"timezone"`
}

// GitHubConfig holds commit-import settings shared across repositories.
type GitHubConfig struct {
	// APIURL overrides the GitHub API base URL (GitHub Enterprise). Empty = github.com.
	APIURL string `json:"api_url"`
	// Token is a personal access token; optional for public repositories.
	Token string `json:"token"`
	// Author keeps only commits whose author name contains this string
	// (case-insensitive). Empty = keep all. Repos can override it.
	Author string `json:"author"`
}

// RepoConfig configures commit-based hour estimation for one repository.
type RepoConfig struct {
	// Name is the repository in "owner/name" form.
	Name string `json:"name"`
	// AutoCalculate estimates hours from commit gaps; when false,
	// DefaultHours is used as-is.
	AutoCalculate bool    `json:"auto_calculate"`
	DefaultHours  float64 `json:"default_hours"`
	// Author overrides github.author for this repository.
	Author string `json:"author"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration. Replace with your own registered app ID for
	// organisational or production deployments.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultLookbackMonths bounds the completed-task fetch window.
	DefaultLookbackMonths = 3
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Planner: PlannerConfig{
			TenantID:       DefaultTenantID,
			ClientID:       DefaultClientID,
			LookbackMonths: DefaultLookbackMonths,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// ptt configuration – ~/.ptt/config.json
//
// All settings except "repos" are optional; the built-in defaults shown
// below work out of the box for personal Microsoft accounts and most
// organisations. Edit this file to customise ptt behaviour.
{
  // ── Microsoft Graph / Planner ────────────────────────────────────────────
  "planner": {
    // Azure AD tenant ID.
    // • "common"  – personal Microsoft accounts and any organisation (default)
    // • Your organisation's tenant GUID, e.g. "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    // The built-in value is the public Azure CLI app – no app registration needed.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // Restrict the timesheet to one Planner plan. Empty shows all plans.
    "plan_id": "",

    // How many months of completed tasks to fetch. Open tasks are always fetched.
    "lookback_months": 3,

    // IANA timezone used for day/week grouping, e.g. "Europe/Berlin".
    // Leave empty for the system timezone.
    "timezone": ""
  },

  // ── GitHub commit import (ptt commits) ───────────────────────────────────
  "github": {
    // GitHub API base URL; set for GitHub Enterprise, empty for github.com.
    "api_url": "",

    // Personal access token. Optional for public repositories.
    "token": "",

    // Keep only commits whose author name contains this string
    // (case-insensitive). Empty keeps every commit.
    "author": ""
  },

  // Repositories scanned by "ptt commits fetch". For each one, either let
  // ptt estimate hours from commit gaps (auto_calculate) or book a fixed
  // number of hours per active day (default_hours).
  "repos": [
    // { "name": "octocat/hello-world", "auto_calculate": true, "default_hours": 0, "author": "" }
  ]
}
`

// configFilePath returns the path to ~/.ptt/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ptt", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.ptt/config.json, creating it with annotated defaults on first
// run. Lines starting with // are treated as comments and stripped before
// JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Planner.TenantID == "" {
		cfg.Planner.TenantID = DefaultTenantID
	}
	if cfg.Planner.ClientID == "" {
		cfg.Planner.ClientID = DefaultClientID
	}
	if cfg.Planner.LookbackMonths == 0 {
		cfg.Planner.LookbackMonths = DefaultLookbackMonths
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
