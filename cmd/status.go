package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/storage"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current and next block of today's plan",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()

	base, err := storage.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	plan, err := storage.LoadPlan(base, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if plan == nil || len(plan.Entries) == 0 {
		fmt.Println("No plan for today. Run `tdp plan` to create one.")
		return nil
	}

	current, next := locate(plan.Entries, now)
	switch {
	case current != nil:
		remaining := int64(current.End.Sub(now).Seconds())
		fmt.Println("Now:")
		fmt.Printf("  %s (%s)\n", current.Label, spanText(*current))
		fmt.Printf("  Remaining: %s\n", formatElapsed(remaining))
	case now.Before(plan.Entries[0].Start):
		fmt.Printf("Day starts at %s.\n", timecalc.Format12h(plan.Entries[0].Start))
	case next == nil:
		fmt.Println("Day is over.")
	default:
		fmt.Println("Between blocks.")
	}
	if next != nil {
		fmt.Printf("Next: %s at %s\n", next.Label, timecalc.Format12h(next.Start))
	}

	fmt.Printf("Today: %d focus blocks, %s planned.\n",
		countKind(plan.Entries, model.KindTask), timecalc.FormatDuration(focusSeconds(plan.Entries)))
	return nil
}

// locate returns the entry running at ts and the first entry starting after ts.
func locate(entries []model.Entry, ts time.Time) (current, next *model.Entry) {
	for i := range entries {
		e := &entries[i]
		if current == nil && e.Contains(ts) {
			current = e
			continue
		}
		if e.Start.After(ts) {
			return current, e
		}
	}
	return current, nil
}

func countKind(entries []model.Entry, kind model.Kind) int {
	n := 0
	for _, e := range entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func formatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
