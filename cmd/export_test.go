package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func sampleEntries() []model.Entry {
	at := func(h, m int) time.Time { return time.Date(2026, 2, 27, h, m, 0, 0, time.UTC) }
	return []model.Entry{
		{Start: at(7, 0), End: at(7, 55), Label: "Study, deep", Kind: model.KindTask},
		{Start: at(7, 55), End: at(8, 25), Label: model.LabelBreakfast, Kind: model.KindMeal},
		{Start: at(8, 25), End: at(8, 40), Label: model.LabelBreak, Kind: model.KindBreak},
	}
}

func TestPrintCSV(t *testing.T) {
	var buf bytes.Buffer
	printCSV(&buf, sampleEntries())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4:\n%s", len(lines), buf.String())
	}
	if lines[1] != `2026-02-27,07:00,07:55,"Study, deep",task,55` {
		t.Errorf("row = %q", lines[1])
	}
	if lines[3] != "2026-02-27,08:25,08:40,Break,break,15" {
		t.Errorf("row = %q", lines[3])
	}
}

func TestPrintMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := printEntries(&buf, sampleEntries(), "md"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "## 2026-02-27\n") {
		t.Errorf("missing date heading:\n%s", out)
	}
	if !strings.Contains(out, "- **07:55 AM – 08:25 AM**: Breakfast") {
		t.Errorf("missing breakfast row:\n%s", out)
	}
}

func TestPrintTextContainsRows(t *testing.T) {
	var buf bytes.Buffer
	if err := printEntries(&buf, sampleEntries(), "text"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"07:00 AM – 07:55 AM", "Study, deep", "Break"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintStructuredFormats(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		var buf bytes.Buffer
		if err := printEntries(&buf, sampleEntries(), format); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !strings.Contains(buf.String(), "Breakfast") {
			t.Errorf("%s output missing label:\n%s", format, buf.String())
		}
	}
}

func TestPrintEmpty(t *testing.T) {
	var buf bytes.Buffer
	printText(&buf, nil)
	if buf.String() != "No entries found.\n" {
		t.Errorf("empty output = %q", buf.String())
	}
}
