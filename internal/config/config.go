package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/trivial-day-planner/internal/planner"
)

// Config is the root configuration for tdp, stored in ~/.tdp/config.json.
// The JSON file supports single-line // comments for documentation purposes.
// config.yaml, config.yml and config.toml are accepted as well.
type Config struct {
	Planner PlannerConfig `json:"planner"`
	Outlook OutlookConfig `json:"outlook"`
	Log     LogConfig     `json:"log"`
}

// PlannerConfig holds the defaults for `tdp plan`.
type PlannerConfig struct {
	// Wake and Sleep are HH:MM wall-clock times.
	Wake  string `json:"wake"`
	Sleep string `json:"sleep"`
	// Tasks are the labels picked for focus blocks.
	Tasks []string `json:"tasks"`
	// FocusMinutes is the preferred focus-block length before feedback adjustment.
	FocusMinutes    int `json:"focus_minutes"`
	MinFocusMinutes int `json:"min_focus_minutes"`
	MaxFocusMinutes int `json:"max_focus_minutes"`
	// BreakEveryHours is the break cadence.
	BreakEveryHours int `json:"break_every_hours"`
	// Selector is "random" or "round-robin".
	Selector string `json:"selector"`
	// Meals are anchored at an offset from wake time. Nil means the
	// built-in meals; an empty list disables meals.
	Meals []MealConfig `json:"meals"`
}

// MealConfig anchors a meal at a Go duration offset from wake time, e.g. "5h30m".
type MealConfig struct {
	Label  string `json:"label"`
	Offset string `json:"offset"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = UTC.
	Timezone string `json:"timezone"`
	// Category is attached to every event created from a plan.
	Category string `json:"category"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level string `json:"level"`
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
	// DefaultCategory is the Outlook category for pushed plan blocks.
	DefaultCategory = "Day plan"

	DefaultWake            = "07:00"
	DefaultSleep           = "22:00"
	DefaultFocusMinutes    = 60
	DefaultBreakEveryHours = 2
	DefaultLogLevel        = "warn"

	// DefaultCompletion and DefaultStress are used when no earlier feedback exists.
	DefaultCompletion = 70
	DefaultStress     = 40
)

// DefaultTasks returns the task labels used when none are configured.
func DefaultTasks() []string {
	return []string{"Study", "Work", "Exercise", "Reading", "Leisure"}
}

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Planner: PlannerConfig{
			Wake:            DefaultWake,
			Sleep:           DefaultSleep,
			Tasks:           DefaultTasks(),
			FocusMinutes:    DefaultFocusMinutes,
			MinFocusMinutes: planner.DefaultLimits.MinFocus,
			MaxFocusMinutes: planner.DefaultLimits.MaxFocus,
			BreakEveryHours: DefaultBreakEveryHours,
			Selector:        planner.SelectorRandom,
		},
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
			Category: DefaultCategory,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// tdp configuration – ~/.tdp/config.json
//
// All settings are optional; the built-in defaults shown below are used for
// anything left out. You may also write this file as config.yaml or
// config.toml with the same keys.
{
  // ── Planner defaults ─────────────────────────────────────────────────────
  "planner": {
    // Usual wake and sleep times (HH:MM, 24-hour clock).
    "wake": "07:00",
    "sleep": "22:00",

    // Task labels picked for focus blocks. Override per run with --tasks.
    "tasks": ["Study", "Work", "Exercise", "Reading", "Leisure"],

    // Preferred focus block in minutes, clamped to [min, max] before
    // yesterday's feedback adjusts it.
    "focus_minutes": 60,
    "min_focus_minutes": 25,
    "max_focus_minutes": 120,

    // Insert a 15 minute break after this many hours.
    "break_every_hours": 2,

    // How tasks are picked: "random" or "round-robin".
    "selector": "random",

    // Meals (30 minutes each) anchored at an offset from wake time.
    // Use [] to disable meals.
    "meals": [
      {"label": "Breakfast", "offset": "1h"},
      {"label": "Lunch", "offset": "5h"},
      {"label": "Snacks", "offset": "8h30m"},
      {"label": "Dinner", "offset": "11h30m"}
    ]
  },

  // ── Microsoft Graph / Outlook calendar ───────────────────────────────────
  "outlook": {
    // Azure AD tenant ID. "common" works for personal Microsoft accounts.
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // IANA timezone for created events, e.g. "Europe/Berlin". Empty = UTC.
    "timezone": "",

    // Outlook category attached to pushed plan blocks.
    "category": "Day plan"
  },

  // ── Diagnostics ──────────────────────────────────────────────────────────
  "log": {
    // trace, debug, info, warn, error or off.
    "level": "warn"
  }
}
`

// candidateFiles are checked in order; the first existing one wins.
var candidateFiles = []string{"config.yaml", "config.yml", "config.toml", "config.json"}

// Dir returns the configuration directory (~/.tdp).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tdp"), nil
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

// Load reads the configuration from ~/.tdp, creating config.json with
// annotated defaults on first run.
func Load(log zerolog.Logger) (Config, error) {
	dir, err := Dir()
	if err != nil {
		return defaultConfig(), err
	}
	return LoadDir(dir, log)
}

// LoadDir reads the configuration from dir. If no config file exists, the
// annotated JSON template is written and defaults are returned.
func LoadDir(dir string, log zerolog.Logger) (Config, error) {
	var path string
	for _, name := range candidateFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}

	if path == "" {
		// First run: write the annotated template so users can discover options.
		path = filepath.Join(dir, "config.json")
		if writeErr := writeDefault(path); writeErr != nil {
			log.Warn().Err(writeErr).Str("path", path).Msg("could not create config file")
		}
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	jsonBytes, format, err := coerceToJSONBytes(path, data)
	if err != nil {
		return defaultConfig(), fmt.Errorf("parsing %s config file %s: %w", format, path, err)
	}

	var cfg Config
	if err := json.Unmarshal(jsonBytes, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	log.Debug().Str("path", path).Str("format", format).Msg("config loaded")

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero-value fields with built-in defaults so callers
// always get a usable Config even if the user only partially fills in the file.
func (c *Config) applyDefaults() {
	d := defaultConfig()
	p := &c.Planner
	if p.Wake == "" {
		p.Wake = d.Planner.Wake
	}
	if p.Sleep == "" {
		p.Sleep = d.Planner.Sleep
	}
	if len(p.Tasks) == 0 {
		p.Tasks = d.Planner.Tasks
	}
	if p.FocusMinutes == 0 {
		p.FocusMinutes = d.Planner.FocusMinutes
	}
	if p.MinFocusMinutes == 0 {
		p.MinFocusMinutes = d.Planner.MinFocusMinutes
	}
	if p.MaxFocusMinutes == 0 {
		p.MaxFocusMinutes = d.Planner.MaxFocusMinutes
	}
	if p.BreakEveryHours == 0 {
		p.BreakEveryHours = d.Planner.BreakEveryHours
	}
	if p.Selector == "" {
		p.Selector = d.Planner.Selector
	}
	if c.Outlook.TenantID == "" {
		c.Outlook.TenantID = DefaultTenantID
	}
	if c.Outlook.ClientID == "" {
		c.Outlook.ClientID = DefaultClientID
	}
	if c.Outlook.Category == "" {
		c.Outlook.Category = DefaultCategory
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Limits returns the configured focus-length range.
func (p PlannerConfig) Limits() planner.Limits {
	return planner.Limits{MinFocus: p.MinFocusMinutes, MaxFocus: p.MaxFocusMinutes}
}

// MealAnchors converts the configured meals into planner meals.
func (p PlannerConfig) MealAnchors() ([]planner.Meal, error) {
	if p.Meals == nil {
		return planner.DefaultMeals(), nil
	}
	meals := make([]planner.Meal, 0, len(p.Meals))
	for _, m := range p.Meals {
		off, err := time.ParseDuration(m.Offset)
		if err != nil {
			return nil, fmt.Errorf("meal %q: invalid offset %q: %w", m.Label, m.Offset, err)
		}
		meals = append(meals, planner.Meal{Label: m.Label, Offset: off})
	}
	return meals, nil
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
