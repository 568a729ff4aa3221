package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/config"
	"github.com/Tiliavir/trivial-day-planner/internal/logging"
)

var (
	logLevel string

	// log and cfg are set up before any subcommand runs.
	log = zerolog.Nop()
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tdp",
	Short: "Trivial Day Planner – generate an adaptive daily schedule",
	Long: `tdp is a single-binary, file-based daily planner.
It walks through your day in focus blocks, inserts breaks and meals, and
adapts the block length to yesterday's feedback.
Plans and feedback are stored as human-readable JSON files in ~/.tdp/.`,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error, off")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(outlookCmd)
}

// setup loads the configuration and the logger. The --log-level flag wins
// over the configured level.
func setup(cmd *cobra.Command, args []string) error {
	log = logging.New(os.Stderr, logLevel)

	c, err := config.Load(log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg = c

	if !cmd.Flags().Changed("log-level") {
		log = logging.New(os.Stderr, cfg.Log.Level)
	}
	return nil
}
