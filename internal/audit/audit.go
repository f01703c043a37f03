// Package audit evaluates fetched time entries against two fixed fraud
// heuristics and aggregates the results into a report. It is a pure
// in-memory transformation: no upstream calls, no persistence, no clock.
package audit

import (
	"errors"
	"fmt"
	"sort"

	"timecop/internal/model"
	"timecop/internal/timefmt"
)

// DefaultShortThresholdSeconds is the short-duration cutoff (5 minutes).
const DefaultShortThresholdSeconds int64 = 300

// ErrInvalidInput is the sentinel matched by errors.Is for any
// InvalidInputError returned from Run.
var ErrInvalidInput = errors.New("invalid audit input")

// InvalidInputError reports a time entry that violates the non-negative
// duration invariant. It indicates malformed upstream data and is never
// retried.
type InvalidInputError struct {
	EntryID         string
	DurationSeconds int64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid audit input: entry %s has negative duration %ds", e.EntryID, e.DurationSeconds)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Evaluate classifies a single entry. It returns a flag with reason
// ZERO_SECONDS for exactly-zero durations, SHORT_DURATION for durations
// strictly between zero and thresholdSeconds, and nil otherwise.
// The zero-second rule takes precedence; the two reasons are mutually
// exclusive by construction.
func Evaluate(entry *model.TimeEntry, thresholdSeconds int64) *model.AuditFlag {
	switch {
	case entry.DurationSeconds == 0:
		return &model.AuditFlag{Entry: entry, Reason: model.ReasonZeroSeconds}
	case entry.DurationSeconds > 0 && entry.DurationSeconds < thresholdSeconds:
		return &model.AuditFlag{Entry: entry, Reason: model.ReasonShortDuration}
	default:
		return nil
	}
}

// VerdictFor maps an entry to its display verdict using the same rules as
// Evaluate.
func VerdictFor(entry *model.TimeEntry, thresholdSeconds int64) model.Verdict {
	flag := Evaluate(entry, thresholdSeconds)
	if flag == nil {
		return model.VerdictClean
	}
	if flag.Reason == model.ReasonZeroSeconds {
		return model.VerdictFraud
	}
	return model.VerdictPotential
}

// Run evaluates every entry in order and builds the report. The whole batch
// is validated up front: if any entry has a negative duration, Run fails
// with an InvalidInputError and no report is produced. An empty input yields
// a report with zero flags. Output is deterministic for a given input.
func Run(entries []model.TimeEntry, windowHours float64, thresholdSeconds int64) (*model.AuditReport, error) {
	for i := range entries {
		if entries[i].DurationSeconds < 0 {
			return nil, &InvalidInputError{
				EntryID:         entries[i].ID,
				DurationSeconds: entries[i].DurationSeconds,
			}
		}
	}

	report := &model.AuditReport{
		TotalEntriesScanned: len(entries),
		Flags:               []model.AuditFlag{},
		FlagsByUser:         map[string]int{},
		WindowHours:         windowHours,
		Summary:             model.Summary{Total: len(entries)},
	}

	for i := range entries {
		flag := Evaluate(&entries[i], thresholdSeconds)
		if flag == nil {
			report.Summary.Clean++
			continue
		}
		report.Flags = append(report.Flags, *flag)
		report.FlagsByUser[entries[i].UserID]++
		if flag.Reason == model.ReasonZeroSeconds {
			report.Summary.Fraud++
		} else {
			report.Summary.Potential++
		}
	}

	report.Tasks = groupByTask(entries, thresholdSeconds)
	return report, nil
}

// verdictRank orders verdicts for display: fraud first, clean last.
func verdictRank(v model.Verdict) int {
	switch v {
	case model.VerdictFraud:
		return 0
	case model.VerdictPotential:
		return 1
	default:
		return 2
	}
}

// groupByTask buckets entries per task and sorts groups (and entries within
// each group) with flagged work first. Grouping order is stable with respect
// to scan order, so output stays deterministic.
func groupByTask(entries []model.TimeEntry, thresholdSeconds int64) []model.TaskGroup {
	index := map[string]int{}
	var groups []model.TaskGroup

	for i := range entries {
		e := &entries[i]
		verdict := VerdictFor(e, thresholdSeconds)

		gi, seen := index[e.TaskID]
		if !seen {
			gi = len(groups)
			index[e.TaskID] = gi
			groups = append(groups, model.TaskGroup{
				TaskID:   e.TaskID,
				TaskName: e.TaskName,
				Status:   verdict,
			})
		}

		groups[gi].Entries = append(groups[gi].Entries, model.TaskEntry{
			UserName:        e.UserName,
			UserEmail:       e.UserEmail,
			Duration:        timefmt.FormatSeconds(e.DurationSeconds),
			DurationSeconds: e.DurationSeconds,
			Verdict:         verdict,
		})
		if verdictRank(verdict) < verdictRank(groups[gi].Status) {
			groups[gi].Status = verdict
		}
	}

	for gi := range groups {
		g := &groups[gi]
		sort.SliceStable(g.Entries, func(a, b int) bool {
			return verdictRank(g.Entries[a].Verdict) < verdictRank(g.Entries[b].Verdict)
		})
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return verdictRank(groups[a].Status) < verdictRank(groups[b].Status)
	})
	return groups
}
