package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
)

// feedbackLookback is how many days LatestFeedback searches backwards.
const feedbackLookback = 7

// BaseDir returns the root data directory (~/.tdp).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tdp"), nil
}

// dayFilePath returns the path for the given date's JSON file.
func dayFilePath(base string, t time.Time) string {
	return filepath.Join(base, t.Format("2006"), t.Format("01"), t.Format("02")+".json")
}

// LoadDay loads the DayFile for the given date. Returns an empty DayFile if not found.
func LoadDay(base string, t time.Time) (model.DayFile, error) {
	path := dayFilePath(base, t)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DayFile{Date: t.Format("2006-01-02")}, nil
	}
	if err != nil {
		return model.DayFile{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	var df model.DayFile
	if err := json.Unmarshal(data, &df); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return model.DayFile{}, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return df, nil
}

// SaveDay atomically writes a DayFile for the given date.
func SaveDay(base string, t time.Time, df model.DayFile) error {
	path := dayFilePath(base, t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// SavePlan stores plan for the given date, replacing any previous plan and
// keeping recorded feedback.
func SavePlan(base string, day time.Time, plan model.Plan) error {
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	df.Plan = &plan
	return SaveDay(base, day, df)
}

// LoadPlan returns the stored plan for the given date, or nil if there is none.
func LoadPlan(base string, day time.Time) (*model.Plan, error) {
	df, err := LoadDay(base, day)
	if err != nil {
		return nil, err
	}
	return df.Plan, nil
}

// SaveFeedback records feedback for the given date, replacing any earlier record.
func SaveFeedback(base string, day time.Time, fb model.Feedback) error {
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	df.Feedback = &fb
	return SaveDay(base, day, df)
}

// LatestFeedback searches the days before `before` (most recent first) for
// recorded feedback. It returns the feedback, the day it was recorded for,
// and an error if any. A nil feedback means none was found within a week.
func LatestFeedback(base string, before time.Time) (*model.Feedback, time.Time, error) {
	for i := 1; i <= feedbackLookback; i++ {
		day := before.AddDate(0, 0, -i)
		df, err := LoadDay(base, day)
		if err != nil {
			return nil, time.Time{}, err
		}
		if df.Feedback != nil {
			return df.Feedback, day, nil
		}
	}
	return nil, time.Time{}, nil
}

// LoadPlans loads all stored plans in [from, to] inclusive, in date order.
func LoadPlans(base string, from, to time.Time) ([]model.Plan, error) {
	var plans []model.Plan
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		df, err := LoadDay(base, d)
		if err != nil {
			return nil, err
		}
		if df.Plan != nil {
			plans = append(plans, *df.Plan)
		}
	}
	return plans, nil
}

// LoadRange loads all planned entries in [from, to] inclusive.
func LoadRange(base string, from, to time.Time) ([]model.Entry, error) {
	plans, err := LoadPlans(base, from, to)
	if err != nil {
		return nil, err
	}
	var entries []model.Entry
	for _, p := range plans {
		entries = append(entries, p.Entries...)
	}
	return entries, nil
}
