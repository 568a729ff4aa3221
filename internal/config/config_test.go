package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/trivial-day-planner/internal/planner"
)

func TestLoadDirWritesTemplateOnFirstRun(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadDir(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Errorf("first run config = %+v, want defaults", cfg)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("template not written: %v", err)
	}

	// The written template must parse back to the same settings.
	again, err := LoadDir(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadDir on template: %v", err)
	}
	if again.Planner.Wake != DefaultWake || again.Planner.FocusMinutes != DefaultFocusMinutes {
		t.Errorf("template planner = %+v", again.Planner)
	}
	meals, err := again.Planner.MealAnchors()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(meals, planner.DefaultMeals()) {
		t.Errorf("template meals = %v, want %v", meals, planner.DefaultMeals())
	}
}

func TestLoadDirPartialJSONGetsDefaults(t *testing.T) {
	dir := t.TempDir()
	data := `// only override the wake time
{
  "planner": {
    // early bird
    "wake": "05:30"
  }
}
`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadDir(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cfg.Planner.Wake != "05:30" {
		t.Errorf("wake = %q, want %q", cfg.Planner.Wake, "05:30")
	}
	if cfg.Planner.Sleep != DefaultSleep {
		t.Errorf("sleep = %q, want default %q", cfg.Planner.Sleep, DefaultSleep)
	}
	if cfg.Outlook.ClientID != DefaultClientID {
		t.Errorf("client id = %q, want default", cfg.Outlook.ClientID)
	}
	if cfg.Planner.Meals != nil {
		t.Errorf("meals = %v, want nil (built-in)", cfg.Planner.Meals)
	}
}

func TestLoadDirYAML(t *testing.T) {
	dir := t.TempDir()
	data := `planner:
  sleep: "23:00"
  tasks: [Code, Review]
  break_every_hours: 3
  meals: []
log:
  level: debug
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadDir(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cfg.Planner.Sleep != "23:00" || cfg.Planner.BreakEveryHours != 3 {
		t.Errorf("planner = %+v", cfg.Planner)
	}
	if !reflect.DeepEqual(cfg.Planner.Tasks, []string{"Code", "Review"}) {
		t.Errorf("tasks = %v", cfg.Planner.Tasks)
	}
	meals, err := cfg.Planner.MealAnchors()
	if err != nil {
		t.Fatal(err)
	}
	if len(meals) != 0 {
		t.Errorf("meals = %v, want none", meals)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadDirTOML(t *testing.T) {
	dir := t.TempDir()
	data := `[planner]
focus_minutes = 45
selector = "round-robin"

[[planner.meals]]
label = "Lunch"
offset = "4h"

[outlook]
timezone = "Europe/Berlin"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadDir(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cfg.Planner.FocusMinutes != 45 || cfg.Planner.Selector != "round-robin" {
		t.Errorf("planner = %+v", cfg.Planner)
	}
	if cfg.Outlook.Timezone != "Europe/Berlin" || cfg.Outlook.Category != DefaultCategory {
		t.Errorf("outlook = %+v", cfg.Outlook)
	}
	meals, err := cfg.Planner.MealAnchors()
	if err != nil {
		t.Fatal(err)
	}
	want := []planner.Meal{{Label: "Lunch", Offset: 4 * time.Hour}}
	if !reflect.DeepEqual(meals, want) {
		t.Errorf("meals = %v, want %v", meals, want)
	}
}

func TestLoadDirInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{bad"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestMealAnchorsInvalidOffset(t *testing.T) {
	p := PlannerConfig{Meals: []MealConfig{{Label: "Lunch", Offset: "noon"}}}
	if _, err := p.MealAnchors(); err == nil {
		t.Error("expected error for invalid offset")
	}
}

func TestStripLineComments(t *testing.T) {
	in := "// header\n{\n  // note\n  \"a\": \"http://x\"\n}\n"
	got := string(stripLineComments([]byte(in)))
	want := "{\n  \"a\": \"http://x\"\n}\n\n"
	if got != want {
		t.Errorf("stripLineComments = %q, want %q", got, want)
	}
}
