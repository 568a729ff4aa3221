package model

import (
	"fmt"
	"time"
)

// Kind classifies a schedule entry.
type Kind string

const (
	KindTask  Kind = "task"
	KindBreak Kind = "break"
	KindMeal  Kind = "meal"
)

// Fixed labels used for non-task entries.
const (
	LabelBreak     = "Break"
	LabelBreakfast = "Breakfast"
	LabelLunch     = "Lunch"
	LabelSnacks    = "Snacks"
	LabelDinner    = "Dinner"
)

// TimeOfDay is a wall-clock time without a date component.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String formats the time as 24-hour "15:04".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns t on the calendar day of d, in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, d.Location())
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// ClockOf returns the wall-clock part of ts.
func ClockOf(ts time.Time) TimeOfDay {
	return TimeOfDay{Hour: ts.Hour(), Minute: ts.Minute()}
}

// Entry is a single block of a generated schedule.
type Entry struct {
	Start      time.Time `json:"start" yaml:"start"`
	End        time.Time `json:"end" yaml:"end"`
	Label      string    `json:"label" yaml:"label"`
	Kind       Kind      `json:"kind" yaml:"kind"`
	ExternalID string    `json:"external_id,omitempty" yaml:"external_id,omitempty"`
}

// Duration returns the length of the entry.
func (e Entry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Contains reports whether ts falls within [Start, End).
func (e Entry) Contains(ts time.Time) bool {
	return !ts.Before(e.Start) && ts.Before(e.End)
}

// Plan is the result of one schedule generation for a single day.
type Plan struct {
	ID                    string    `json:"id" yaml:"id"`
	Date                  string    `json:"date" yaml:"date"`
	Wake                  string    `json:"wake" yaml:"wake"`
	Sleep                 string    `json:"sleep" yaml:"sleep"`
	Tasks                 []string  `json:"tasks" yaml:"tasks"`
	RequestedFocusMinutes int       `json:"requested_focus_minutes" yaml:"requested_focus_minutes"`
	FocusMinutes          int       `json:"focus_minutes" yaml:"focus_minutes"`
	BreakEveryHours       int       `json:"break_every_hours" yaml:"break_every_hours"`
	Completion            int       `json:"completion" yaml:"completion"`
	Stress                int       `json:"stress" yaml:"stress"`
	Entries               []Entry   `json:"entries" yaml:"entries"`
	CreatedAt             time.Time `json:"created_at" yaml:"created_at"`
}

// Feedback is the self-reported outcome of a day.
type Feedback struct {
	Completion int       `json:"completion"`
	Stress     int       `json:"stress"`
	RecordedAt time.Time `json:"recorded_at"`
}

// DayFile is the top-level structure stored in each daily JSON file.
type DayFile struct {
	Date     string    `json:"date"`
	Plan     *Plan     `json:"plan"`
	Feedback *Feedback `json:"feedback"`
}
