package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	yaml "go.yaml.in/yaml/v3"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

var (
	spanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	taskStyle  = lipgloss.NewStyle().Bold(true)
	breakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	mealStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dateStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// spanText renders the "07:00 AM – 07:55 AM" part of a row.
func spanText(e model.Entry) string {
	return fmt.Sprintf("%s – %s", timecalc.Format12h(e.Start), timecalc.Format12h(e.End))
}

func labelStyle(k model.Kind) lipgloss.Style {
	switch k {
	case model.KindBreak:
		return breakStyle
	case model.KindMeal:
		return mealStyle
	default:
		return taskStyle
	}
}

// printEntries writes entries in the given format: text, md, csv, json or yaml.
func printEntries(w io.Writer, entries []model.Entry, format string) error {
	switch format {
	case "json":
		return printJSON(w, entries)
	case "yaml":
		return printYAML(w, entries)
	case "csv":
		printCSV(w, entries)
	case "md":
		printMarkdown(w, entries)
	default:
		printText(w, entries)
	}
	return nil
}

// printText groups entries by date and prints one styled row per entry.
func printText(w io.Writer, entries []model.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	var currentDay string
	for _, e := range entries {
		day := e.Start.Format("2006-01-02")
		if day != currentDay {
			if currentDay != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, dateStyle.Render(day))
			currentDay = day
		}
		fmt.Fprintf(w, "%s  %s\n", spanStyle.Render(spanText(e)), labelStyle(e.Kind).Render(e.Label))
	}
}

func printMarkdown(w io.Writer, entries []model.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "_No entries found._")
		return
	}

	var currentDay string
	for _, e := range entries {
		day := e.Start.Format("2006-01-02")
		if day != currentDay {
			if currentDay != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "## %s\n\n", day)
			currentDay = day
		}
		fmt.Fprintf(w, "- **%s**: %s\n", spanText(e), e.Label)
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
