package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
)

func TestAggregate(t *testing.T) {
	plans := []model.Plan{
		{Entries: sampleEntries()},
		{Entries: sampleEntries()},
	}
	rep := aggregate("2026-W09", plans)

	if rep.Days != 2 {
		t.Errorf("Days = %d, want 2", rep.Days)
	}
	if rep.FocusMinutes != 110 {
		t.Errorf("FocusMinutes = %d, want 110", rep.FocusMinutes)
	}
	if rep.TotalMinutes != 200 {
		t.Errorf("TotalMinutes = %d, want 200", rep.TotalMinutes)
	}
	want := []string{"Study, deep", model.LabelBreakfast, model.LabelBreak}
	if len(rep.Labels) != len(want) {
		t.Fatalf("labels = %+v", rep.Labels)
	}
	for i, l := range want {
		if rep.Labels[i].Label != l {
			t.Errorf("Labels[%d] = %q, want %q", i, rep.Labels[i].Label, l)
		}
	}
	if rep.Labels[0].Blocks != 2 {
		t.Errorf("Blocks = %d, want 2", rep.Labels[0].Blocks)
	}
}

func TestPrintReportCSV(t *testing.T) {
	var buf bytes.Buffer
	printReportCSV(&buf, aggregate("2026-W09", []model.Plan{{Entries: sampleEntries()}}))

	out := buf.String()
	if !strings.HasPrefix(out, "label,kind,blocks,duration_minutes\n") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "\"Study, deep\",task,1,55\n") {
		t.Errorf("missing task row:\n%s", out)
	}
}

func TestPrintReportTextEmptyWeek(t *testing.T) {
	var buf bytes.Buffer
	printReportText(&buf, aggregate("2026-W09", nil))
	if !strings.Contains(buf.String(), "Week 2026-W09 (0 days planned)") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
