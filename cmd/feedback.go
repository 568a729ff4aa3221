package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/planner"
	"github.com/Tiliavir/trivial-day-planner/internal/storage"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

var (
	feedbackCompletion int
	feedbackStress     int
	feedbackDate       string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record how the day went; tomorrow's plan adapts to it",
	Args:  cobra.NoArgs,
	RunE:  runFeedback,
}

func init() {
	feedbackCmd.Flags().IntVar(&feedbackCompletion, "completion", 0, "How productive the day was, 0-100")
	feedbackCmd.Flags().IntVar(&feedbackStress, "stress", 0, "How stressful the day was, 0-100")
	feedbackCmd.Flags().StringVar(&feedbackDate, "date", "", "Day the feedback is for (YYYY-MM-DD); defaults to today")
	_ = feedbackCmd.MarkFlagRequired("completion")
	_ = feedbackCmd.MarkFlagRequired("stress")
}

// feedbackInput mirrors the slider ranges of the feedback form.
type feedbackInput struct {
	Completion int `validate:"min=0,max=100"`
	Stress     int `validate:"min=0,max=100"`
}

func runFeedback(cmd *cobra.Command, args []string) error {
	now := time.Now()

	in := feedbackInput{Completion: feedbackCompletion, Stress: feedbackStress}
	if err := validator.New().Struct(in); err != nil {
		fmt.Fprintln(os.Stderr, "completion and stress must be between 0 and 100")
		os.Exit(1)
	}

	day, err := timecalc.ParseDate(feedbackDate, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	base, err := storage.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fb := model.Feedback{Completion: in.Completion, Stress: in.Stress, RecordedAt: now}
	if err := storage.SaveFeedback(base, day, fb); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	next := planner.AdjustFocus(cfg.Planner.Limits().Clamp(cfg.Planner.FocusMinutes), fb.Completion, fb.Stress)
	fmt.Printf("Recorded feedback for %s: completion %d, stress %d.\n", day.Format("2006-01-02"), fb.Completion, fb.Stress)
	fmt.Printf("Next plan will use %d min focus blocks (configured %d).\n", next, cfg.Planner.FocusMinutes)
	return nil
}
