package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/msgraph"
	"github.com/Tiliavir/trivial-day-planner/internal/storage"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

var (
	outlookPushDate       string
	outlookPushDryRun     bool
	outlookPushTZ         string
	outlookPushSkipBreaks bool
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Create Outlook calendar events for a stored plan",
	Args:  cobra.NoArgs,
	RunE:  runOutlookPush,
}

func init() {
	outlookPushCmd.Flags().StringVar(&outlookPushDate, "date", "", "Day whose plan to push (YYYY-MM-DD); defaults to today")
	outlookPushCmd.Flags().BoolVar(&outlookPushDryRun, "dry-run", false, "Print planned operations without writing")
	outlookPushCmd.Flags().StringVar(&outlookPushTZ, "timezone", "", "IANA timezone for event times (default from config)")
	outlookPushCmd.Flags().BoolVar(&outlookPushSkipBreaks, "skip-breaks", false, "Do not create events for short breaks")
	outlookCmd.AddCommand(outlookPushCmd)
}

func runOutlookPush(cmd *cobra.Command, args []string) error {
	now := time.Now()

	day, err := timecalc.ParseDate(outlookPushDate, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	base, err := storage.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	plan, err := storage.LoadPlan(base, day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if plan == nil || len(plan.Entries) == 0 {
		fmt.Fprintf(os.Stderr, "No plan for %s. Run `tdp plan` first.\n", day.Format("2006-01-02"))
		os.Exit(1)
	}

	timezone := orDefault(outlookPushTZ, cfg.Outlook.Timezone)

	dryTag := ""
	if outlookPushDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Printf("Pushing plan %s (%d blocks)%s...\n", day.Format("2006-01-02"), len(plan.Entries), dryTag)
	fmt.Println()

	ctx := context.Background()

	auth := &msgraph.Authenticator{
		TenantID: cfg.Outlook.TenantID,
		ClientID: cfg.Outlook.ClientID,
		Dir:      base,
		Prompt:   os.Stdout,
		Log:      log,
	}
	tok, oauthCfg, err := auth.Token(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}
	client := msgraph.NewClient(ctx, auth, tok, oauthCfg)

	opts := msgraph.PushOptions{
		Timezone:   timezone,
		Category:   cfg.Outlook.Category,
		DryRun:     outlookPushDryRun,
		SkipBreaks: outlookPushSkipBreaks,
		Out:        os.Stdout,
		Log:        log,
	}
	result, err := msgraph.PushPlan(ctx, client, plan, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Push error: %v\n", err)
		os.Exit(2)
	}

	if !outlookPushDryRun && (result.Created > 0 || result.Skipped > 0) {
		if err := storage.SavePlan(base, day, *plan); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  %d created\n", result.Created)
	fmt.Printf("  %d skipped\n", result.Skipped)
	if result.Errors > 0 {
		fmt.Printf("  %d errors\n", result.Errors)
		os.Exit(2)
	}
	return nil
}
