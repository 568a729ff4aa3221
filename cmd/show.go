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

var (
	showDate string
	showWeek bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored plans",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "Day to show (YYYY-MM-DD); defaults to today")
	showCmd.Flags().BoolVar(&showWeek, "week", false, "Show this week's plans")
}

func runShow(cmd *cobra.Command, args []string) error {
	now := time.Now()

	day, err := timecalc.ParseDate(showDate, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	base, err := storage.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var from, to time.Time
	switch {
	case showWeek:
		from, to = timecalc.WeekRange(day)
	default:
		from = timecalc.StartOfDay(day)
		to = timecalc.EndOfDay(day)
	}

	plans, err := storage.LoadPlans(base, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	printPlans(plans)
	return nil
}

// printPlans prints each plan with a one-line summary under its entries.
func printPlans(plans []model.Plan) {
	if len(plans) == 0 {
		fmt.Println("No plans found. Run `tdp plan` to create one.")
		return
	}
	for i, p := range plans {
		if i > 0 {
			fmt.Println()
		}
		printText(os.Stdout, p.Entries)
		fmt.Printf("  %s → %s, focus %d min, %s planned\n",
			p.Wake, p.Sleep, p.FocusMinutes, timecalc.FormatDuration(focusSeconds(p.Entries)))
	}
}

// focusSeconds sums the length of all task blocks.
func focusSeconds(entries []model.Entry) int64 {
	var total int64
	for _, e := range entries {
		if e.Kind == model.KindTask {
			total += int64(e.Duration().Seconds())
		}
	}
	return total
}
