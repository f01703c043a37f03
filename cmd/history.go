package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"timecop/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored audit runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(false)

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening run history database: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(historyLimit, 0)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No audit runs recorded.")
		return nil
	}

	fmt.Printf("%-22s%-8s%-9s%-7s%-11s%s\n", "STARTED", "HOURS", "SCANNED", "FRAUD", "POTENTIAL", "CLEAN")
	for _, r := range runs {
		fmt.Printf("%-22s%-8.1f%-9d%-7d%-11d%d\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.WindowHours, r.Scanned, r.Fraud, r.Potential, r.Clean)
	}
	return nil
}
