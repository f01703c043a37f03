package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"timecop/internal/audit"
	"timecop/internal/clickup"
	"timecop/internal/model"
	"timecop/internal/timefmt"
)

var (
	auditHours  float64
	auditFormat string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run a time entry audit and print the report",
	Args:  cobra.NoArgs,
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().Float64Var(&auditHours, "hours", 0, "Lookback window in hours (default from config)")
	auditCmd.Flags().StringVar(&auditFormat, "format", "md", "Output format: md, csv, json")
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(true)

	hours := auditHours
	if hours == 0 {
		hours = cfg.Audit.DefaultWindowHours
	}
	if hours <= 0 {
		return fmt.Errorf("invalid --hours value %v: must be positive", hours)
	}

	ctx := cmd.Context()
	now := time.Now()
	from, to := timefmt.Window(now, hours)

	client := clickup.NewClient(ctx, cfg.ClickUp)
	entries, err := client.FetchWindow(ctx, from, to)
	if err != nil {
		return fmt.Errorf("fetching time entries: %w", err)
	}

	report, err := audit.Run(entries, hours, cfg.Audit.ShortThresholdSeconds)
	if err != nil {
		return err
	}

	switch auditFormat {
	case "csv":
		printCSV(report)
	case "json":
		return printJSON(report, from, to)
	default: // md
		printMarkdown(report, from, to)
	}
	return nil
}

func printCSV(report *model.AuditReport) {
	fmt.Println("entry_id,user,task,duration_seconds,reason")
	for _, flag := range report.Flags {
		e := flag.Entry
		fmt.Printf("%s,%s,%s,%d,%s\n", e.ID, e.UserName, e.TaskName, e.DurationSeconds, flag.Reason)
	}
}

func printJSON(report *model.AuditReport, from, to time.Time) error {
	out := struct {
		AuditPeriod struct {
			Start string  `json:"start"`
			End   string  `json:"end"`
			Hours float64 `json:"hours"`
		} `json:"audit_period"`
		*model.AuditReport
	}{AuditReport: report}
	out.AuditPeriod.Start = from.Format("2006-01-02 15:04:05")
	out.AuditPeriod.End = to.Format("2006-01-02 15:04:05")
	out.AuditPeriod.Hours = report.WindowHours

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printMarkdown(report *model.AuditReport, from, to time.Time) {
	fmt.Printf("Audit %s – %s (%.1fh)\n", from.Format("2006-01-02 15:04"), to.Format("15:04"), report.WindowHours)
	fmt.Println("--------------------------------")
	fmt.Printf("Scanned: %d   Fraud: %d   Potential: %d   Clean: %d\n",
		report.Summary.Total, report.Summary.Fraud, report.Summary.Potential, report.Summary.Clean)

	if len(report.Flags) == 0 {
		fmt.Println("No flagged entries.")
		return
	}

	for _, task := range report.Tasks {
		if task.Status == model.VerdictClean {
			continue
		}
		fmt.Printf("\n%s [%s]\n", task.TaskName, task.Status)
		for _, e := range task.Entries {
			marker := " "
			switch e.Verdict {
			case model.VerdictFraud:
				marker = "!"
			case model.VerdictPotential:
				marker = "?"
			}
			fmt.Printf("  %s %-20s%-12s%s\n", marker, e.UserName, e.Duration, e.Verdict)
		}
	}

	fmt.Println("\nFlags by user:")
	printed := map[string]bool{}
	for _, flag := range report.Flags {
		// FlagsByUser is a map; iterate flags to keep scan order.
		userID := flag.Entry.UserID
		if printed[userID] {
			continue
		}
		printed[userID] = true
		fmt.Printf("  %-20s%d\n", flag.Entry.UserName, report.FlagsByUser[userID])
	}
}
