package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/storage"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

var (
	reportDate   string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show planned time per task for a week",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Any day of the week to report (YYYY-MM-DD); defaults to today")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

type labelTotal struct {
	Label   string     `json:"label"`
	Kind    model.Kind `json:"kind"`
	Blocks  int        `json:"blocks"`
	Minutes int64      `json:"duration_minutes"`
}

type weekReport struct {
	Week         string       `json:"week"`
	Days         int          `json:"days_planned"`
	Labels       []labelTotal `json:"labels"`
	FocusMinutes int64        `json:"focus_minutes"`
	TotalMinutes int64        `json:"total_minutes"`
}

func runReport(cmd *cobra.Command, args []string) error {
	now := time.Now()

	day, err := timecalc.ParseDate(reportDate, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	base, err := storage.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	from, to := timecalc.WeekRange(day)
	plans, err := storage.LoadPlans(base, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rep := aggregate(timecalc.ISOWeekLabel(day), plans)
	switch reportFormat {
	case "csv":
		printReportCSV(os.Stdout, rep)
	case "json":
		err = printJSON(os.Stdout, rep)
	default:
		printReportText(os.Stdout, rep)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}

// aggregate sums planned minutes per label. Tasks come first, then meals and
// breaks; within a kind labels are sorted alphabetically.
func aggregate(week string, plans []model.Plan) weekReport {
	rep := weekReport{Week: week, Days: len(plans)}
	byLabel := map[string]*labelTotal{}
	for _, p := range plans {
		for _, e := range p.Entries {
			t, ok := byLabel[e.Label]
			if !ok {
				t = &labelTotal{Label: e.Label, Kind: e.Kind}
				byLabel[e.Label] = t
			}
			mins := int64(e.Duration().Minutes())
			t.Blocks++
			t.Minutes += mins
			rep.TotalMinutes += mins
			if e.Kind == model.KindTask {
				rep.FocusMinutes += mins
			}
		}
	}
	for _, t := range byLabel {
		rep.Labels = append(rep.Labels, *t)
	}
	sort.Slice(rep.Labels, func(i, j int) bool {
		a, b := rep.Labels[i], rep.Labels[j]
		if kindRank(a.Kind) != kindRank(b.Kind) {
			return kindRank(a.Kind) < kindRank(b.Kind)
		}
		return a.Label < b.Label
	})
	return rep
}

func kindRank(k model.Kind) int {
	switch k {
	case model.KindTask:
		return 0
	case model.KindMeal:
		return 1
	default:
		return 2
	}
}

func printReportText(w io.Writer, rep weekReport) {
	fmt.Fprintf(w, "Week %s (%d days planned)\n", rep.Week, rep.Days)
	fmt.Fprintln(w, "--------------------------------")
	for _, t := range rep.Labels {
		fmt.Fprintf(w, "%-20s%s\n", t.Label, timecalc.FormatDuration(t.Minutes*60))
	}
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintf(w, "%-20s%s\n", "Focus", timecalc.FormatDuration(rep.FocusMinutes*60))
	fmt.Fprintf(w, "%-20s%s\n", "Total", timecalc.FormatDuration(rep.TotalMinutes*60))
}

func printReportCSV(w io.Writer, rep weekReport) {
	fmt.Fprintln(w, "label,kind,blocks,duration_minutes")
	for _, t := range rep.Labels {
		fmt.Fprintf(w, "%s,%s,%d,%d\n", csvEscape(t.Label), t.Kind, t.Blocks, t.Minutes)
	}
}
