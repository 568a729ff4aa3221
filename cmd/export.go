package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/storage"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

var (
	exportFormat string
	exportWeek   bool
	exportDate   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export planned entries to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md, yaml")
	exportCmd.Flags().BoolVar(&exportWeek, "week", false, "Export this week's plans instead of a single day")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Day to export (YYYY-MM-DD); defaults to today")
}

func runExport(cmd *cobra.Command, args []string) error {
	now := time.Now()

	day, err := timecalc.ParseDate(exportDate, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	base, err := storage.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	from, to := timecalc.StartOfDay(day), timecalc.EndOfDay(day)
	if exportWeek {
		from, to = timecalc.WeekRange(day)
	}

	entries, err := storage.LoadRange(base, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Debug().Int("entries", len(entries)).Str("format", exportFormat).Msg("export")

	if exportFormat == "text" {
		exportFormat = "md"
	}
	if err := printEntries(os.Stdout, entries, exportFormat); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}

func printCSV(w io.Writer, entries []model.Entry) {
	fmt.Fprintln(w, "date,start,end,label,kind,duration_minutes")
	for _, e := range entries {
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%d\n",
			csvEscape(e.Start.Format("2006-01-02")),
			csvEscape(e.Start.Format("15:04")),
			csvEscape(e.End.Format("15:04")),
			csvEscape(e.Label),
			csvEscape(string(e.Kind)),
			int64(e.Duration().Minutes()),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
