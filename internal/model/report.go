package model

// FlagReason says why an entry was flagged.
type FlagReason string

const (
	// ReasonZeroSeconds marks an entry logged with exactly zero elapsed
	// seconds — the signature of a manually backdated entry.
	ReasonZeroSeconds FlagReason = "ZERO_SECONDS"
	// ReasonShortDuration marks an entry below the short-duration threshold
	// (but above zero).
	ReasonShortDuration FlagReason = "SHORT_DURATION"
)

// AuditFlag is a judgment attached to a single time entry.
// The entry is referenced, not copied; flags live only as long as the report.
type AuditFlag struct {
	Entry  *TimeEntry `json:"entry"`
	Reason FlagReason `json:"reason"`
}

// Summary holds the verdict counts for one audit run.
// Fraud + Potential + Clean always equals Total.
type Summary struct {
	Total     int `json:"total"`
	Fraud     int `json:"fraud"`
	Potential int `json:"potential"`
	Clean     int `json:"clean"`
}

// Verdict classifies a single entry or a whole task group.
type Verdict string

const (
	VerdictFraud     Verdict = "fraud"
	VerdictPotential Verdict = "potential"
	VerdictClean     Verdict = "clean"
)

// TaskEntry is one entry's appearance inside a task group, with the
// duration pre-formatted for display.
type TaskEntry struct {
	UserName        string  `json:"user"`
	UserEmail       string  `json:"email"`
	Duration        string  `json:"duration"`
	DurationSeconds int64   `json:"duration_seconds"`
	Verdict         Verdict `json:"verdict"`
}

// TaskGroup collects all scanned entries belonging to one task.
// Status is the worst verdict among the group's entries.
type TaskGroup struct {
	TaskID   string      `json:"task_id"`
	TaskName string      `json:"task_name"`
	Status   Verdict     `json:"status"`
	Entries  []TaskEntry `json:"entries"`
}

// AuditReport is the aggregate result of one audit run. It is built fresh
// per invocation and never persisted beyond the run summary.
type AuditReport struct {
	TotalEntriesScanned int            `json:"total_entries_scanned"`
	Flags               []AuditFlag    `json:"flags"`
	FlagsByUser         map[string]int `json:"flags_by_user"`
	WindowHours         float64        `json:"window_hours"`
	Summary             Summary        `json:"summary"`
	Tasks               []TaskGroup    `json:"tasks"`
}
