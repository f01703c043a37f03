package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"timecop/internal/config"
	"timecop/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "timecop",
	Short: "timecop – ClickUp time entry fraud auditing",
	Long: `timecop audits a team's ClickUp time entries for likely timesheet
fraud using two checks: entries logged with exactly zero seconds and
entries under a short-duration threshold.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig loads configuration or exits. Commands that talk to ClickUp
// pass requireClickUp to fail fast on missing credentials.
func loadConfig(requireClickUp bool) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if requireClickUp {
		if err := cfg.RequireClickUp(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	logger.Init(cfg.Log.Level)
	return cfg
}
