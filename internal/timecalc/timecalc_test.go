package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  model.TimeOfDay
	}{
		{"07:00", model.TimeOfDay{Hour: 7}},
		{"7:05", model.TimeOfDay{Hour: 7, Minute: 5}},
		{"22:30", model.TimeOfDay{Hour: 22, Minute: 30}},
		{"7:00 AM", model.TimeOfDay{Hour: 7}},
		{"10:15 pm", model.TimeOfDay{Hour: 22, Minute: 15}},
		{"10pm", model.TimeOfDay{Hour: 22}},
		{" 12:00 AM ", model.TimeOfDay{Hour: 0}},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseClock(tt.input)
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseClockInvalid(t *testing.T) {
	for _, input := range []string{"", "25:00", "noon", "7:61"} {
		if _, err := timecalc.ParseClock(input); err == nil {
			t.Errorf("ParseClock(%q): expected error", input)
		}
	}
}

func TestDaySpan(t *testing.T) {
	d := time.Date(2026, 2, 27, 15, 0, 0, 0, time.UTC)
	start, end := timecalc.DaySpan(d, model.TimeOfDay{Hour: 7}, model.TimeOfDay{Hour: 22})
	if !start.Equal(time.Date(2026, 2, 27, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2026, 2, 27, 22, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 2, 27, 15, 4, 5, 0, time.UTC)

	today, err := timecalc.ParseDate("", now)
	if err != nil {
		t.Fatal(err)
	}
	if !today.Equal(time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate(\"\") = %v", today)
	}

	d, err := timecalc.ParseDate("2026-03-01", now)
	if err != nil {
		t.Fatal(err)
	}
	if d.Day() != 1 || d.Month() != time.March {
		t.Errorf("ParseDate = %v", d)
	}

	if _, err := timecalc.ParseDate("01.03.2026", now); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestFormat12h(t *testing.T) {
	tests := []struct {
		ts   time.Time
		want string
	}{
		{time.Date(2026, 2, 27, 7, 0, 0, 0, time.UTC), "07:00 AM"},
		{time.Date(2026, 2, 27, 13, 55, 0, 0, time.UTC), "01:55 PM"},
		{time.Date(2026, 2, 27, 0, 30, 0, 0, time.UTC), "12:30 AM"},
	}
	for _, tt := range tests {
		if got := timecalc.Format12h(tt.ts); got != tt.want {
			t.Errorf("Format12h(%v) = %q, want %q", tt.ts, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m"},
		{3600, "1h 0m"},
		{3661, "1h 1m"},
		{5400, "1h 30m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDurationHHMMSS(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDurationHHMMSS(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDurationHHMMSS(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri)

	wantMonday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	wantSunday := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)

	if !monday.Equal(wantMonday) {
		t.Errorf("WeekRange monday = %v, want %v", monday, wantMonday)
	}
	if !sunday.Equal(wantSunday) {
		t.Errorf("WeekRange sunday = %v, want %v", sunday, wantSunday)
	}
}

func TestISOWeekLabel(t *testing.T) {
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	got := timecalc.ISOWeekLabel(fri)
	if got != "2026-W09" {
		t.Errorf("ISOWeekLabel = %q, want %q", got, "2026-W09")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}

func TestGenerateID(t *testing.T) {
	ts := time.Date(2026, 2, 27, 8, 32, 10, 0, time.UTC)
	id := timecalc.GenerateID(ts)
	if len(id) != len("20260227-083210-xxxxx") {
		t.Errorf("GenerateID length = %d, want %d", len(id), len("20260227-083210-xxxxx"))
	}
	if id[:15] != "20260227-083210" {
		t.Errorf("GenerateID prefix = %q, want %q", id[:15], "20260227-083210")
	}
}
