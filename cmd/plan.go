package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/config"
	"github.com/Tiliavir/trivial-day-planner/internal/planner"
	"github.com/Tiliavir/trivial-day-planner/internal/storage"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

var (
	planDate       string
	planWake       string
	planSleep      string
	planTasks      string
	planFocus      int
	planBreakEvery int
	planCompletion int
	planStress     int
	planNoMeals    bool
	planSelector   string
	planSeed       uint64
	planNoSave     bool
	planFormat     string
)

var planCmd = &cobra.Command{
	Use:   "plan [task...]",
	Short: "Generate a schedule for the day",
	Long: `Generate a schedule of focus blocks, breaks and meals between wake and
sleep time. Tasks may be given as arguments or as a comma-separated --tasks
list; otherwise the configured tasks are used. Without --completion and
--stress the most recent recorded feedback adjusts the focus block.`,
	Args: cobra.ArbitraryArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planDate, "date", "", "Day to plan (YYYY-MM-DD); defaults to today")
	planCmd.Flags().StringVar(&planWake, "wake", "", "Wake time, e.g. 07:00 (default from config)")
	planCmd.Flags().StringVar(&planSleep, "sleep", "", "Sleep time, e.g. 22:00 (default from config)")
	planCmd.Flags().StringVar(&planTasks, "tasks", "", "Comma-separated task list")
	planCmd.Flags().IntVar(&planFocus, "focus", 0, "Preferred focus block in minutes (default from config)")
	planCmd.Flags().IntVar(&planBreakEvery, "break-every", 0, "Break cadence in hours (default from config)")
	planCmd.Flags().IntVar(&planCompletion, "completion", config.DefaultCompletion, "Yesterday's productivity, 0-100")
	planCmd.Flags().IntVar(&planStress, "stress", config.DefaultStress, "Yesterday's stress level, 0-100")
	planCmd.Flags().BoolVar(&planNoMeals, "no-meals", false, "Do not schedule meals")
	planCmd.Flags().StringVar(&planSelector, "selector", "", "Task selection: random or round-robin (default from config)")
	planCmd.Flags().Uint64Var(&planSeed, "seed", 0, "Seed for random task selection")
	planCmd.Flags().BoolVar(&planNoSave, "no-save", false, "Print the plan without storing it")
	planCmd.Flags().StringVar(&planFormat, "format", "text", "Output format: text, md, csv, json, yaml")
}

func runPlan(cmd *cobra.Command, args []string) error {
	now := time.Now()
	flags := cmd.Flags()
	pc := cfg.Planner

	day, err := timecalc.ParseDate(planDate, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	wake, err := timecalc.ParseClock(orDefault(planWake, pc.Wake))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	sleep, err := timecalc.ParseClock(orDefault(planSleep, pc.Sleep))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	start, end := timecalc.DaySpan(day, wake, sleep)

	tasks := pc.Tasks
	switch {
	case len(args) > 0:
		tasks = planner.ParseTasks(strings.Join(args, ","))
	case flags.Changed("tasks"):
		tasks = planner.ParseTasks(planTasks)
	}

	base, err := storage.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	completion, stress := planCompletion, planStress
	if !flags.Changed("completion") && !flags.Changed("stress") {
		fb, fbDay, err := storage.LatestFeedback(base, day)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if fb != nil {
			completion, stress = fb.Completion, fb.Stress
			log.Info().Str("from", fbDay.Format("2006-01-02")).Int("completion", completion).Int("stress", stress).Msg("using recorded feedback")
		}
	}

	focus := pc.FocusMinutes
	if flags.Changed("focus") {
		focus = planFocus
	}
	breakEvery := pc.BreakEveryHours
	if flags.Changed("break-every") {
		breakEvery = planBreakEvery
	}

	var meals []planner.Meal
	if !planNoMeals {
		meals, err = pc.MealAnchors()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	seed := planSeed
	if !flags.Changed("seed") {
		seed = uint64(now.UnixNano())
	}
	sel, err := planner.SelectorByName(orDefault(planSelector, pc.Selector), seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	req := planner.Request{
		Start:           start,
		End:             end,
		Tasks:           tasks,
		FocusMinutes:    focus,
		BreakEveryHours: breakEvery,
		Meals:           meals,
		Completion:      completion,
		Stress:          stress,
		Selector:        sel,
	}

	res, err := planner.New(pc.Limits(), log).Build(req)
	if err != nil {
		var verr *planner.ValidationError
		switch {
		case errors.Is(err, planner.ErrNoTasks):
			fmt.Fprintln(os.Stderr, `Please enter at least one task, e.g. tdp plan --tasks "Study, Work".`)
		case errors.Is(err, planner.ErrInvalidSpan), errors.As(err, &verr):
			fmt.Fprintln(os.Stderr, err)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		os.Exit(1)
	}

	plan := res.Plan(req, timecalc.GenerateID(now), now)

	if !planNoSave {
		if err := storage.SavePlan(base, day, plan); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Debug().Str("id", plan.ID).Str("date", plan.Date).Msg("plan saved")
	}

	switch planFormat {
	case "json":
		err = printJSON(os.Stdout, plan)
	case "yaml":
		err = printYAML(os.Stdout, plan)
	default:
		if len(plan.Entries) == 0 {
			fmt.Println("No blocks fit between wake and sleep time.")
			return nil
		}
		err = printEntries(os.Stdout, plan.Entries, planFormat)
		if err == nil && (planFormat == "text" || planFormat == "md") {
			fmt.Println()
			fmt.Printf("Focus block: %d min (requested %d, completion %d, stress %d)\n",
				plan.FocusMinutes, pc.Limits().Clamp(focus), completion, stress)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
