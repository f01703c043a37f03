package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"timecop/internal/audit"
	"timecop/internal/logger"
	"timecop/internal/model"
	"timecop/internal/storage"
	"timecop/internal/timefmt"
)

// Fetcher abstracts the upstream time-entry fetch.
type Fetcher interface {
	FetchWindow(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error)
	CheckConnection(ctx context.Context) error
}

// AuditHandler runs audits over freshly fetched entries.
type AuditHandler struct {
	fetcher            Fetcher
	store              *storage.Store
	thresholdSeconds   int64
	defaultWindowHours float64
	now                func() time.Time
}

// NewAuditHandler creates an AuditHandler. store may be nil when run history
// is disabled.
func NewAuditHandler(fetcher Fetcher, store *storage.Store, thresholdSeconds int64, defaultWindowHours float64) *AuditHandler {
	return &AuditHandler{
		fetcher:            fetcher,
		store:              store,
		thresholdSeconds:   thresholdSeconds,
		defaultWindowHours: defaultWindowHours,
		now:                time.Now,
	}
}

// AuditPeriod describes the audited lookback window.
type AuditPeriod struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Hours float64 `json:"hours"`
}

// AuditResponse is the payload of GET /api/audit.
type AuditResponse struct {
	Success     bool        `json:"success"`
	Timestamp   string      `json:"timestamp"`
	AuditPeriod AuditPeriod `json:"audit_period"`
	*model.AuditReport
}

// RunAudit handles GET /api/audit?hours=N: fetch entries for the lookback
// window, evaluate them, persist a run summary and return the full report.
func (h *AuditHandler) RunAudit(w http.ResponseWriter, r *http.Request) {
	hours := h.defaultWindowHours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			writeError(w, r, http.StatusBadRequest, "hours must be a positive number")
			return
		}
		hours = parsed
	}

	now := h.now()
	from, to := timefmt.Window(now, hours)

	entries, err := h.fetcher.FetchWindow(r.Context(), from, to)
	if err != nil {
		logger.Error("upstream fetch failed", "error", err)
		writeError(w, r, http.StatusBadGateway, "failed to fetch time entries")
		return
	}

	report, err := audit.Run(entries, hours, h.thresholdSeconds)
	if err != nil {
		if errors.Is(err, audit.ErrInvalidInput) {
			logger.Error("audit rejected malformed upstream data", "error", err)
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, "audit failed")
		return
	}

	if h.store != nil {
		if err := h.store.InsertRun(uuid.NewString(), now, report); err != nil {
			// History is best-effort; the report is still returned.
			logger.Warn("failed to persist run summary", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, AuditResponse{
		Success:   true,
		Timestamp: now.Format(time.RFC3339),
		AuditPeriod: AuditPeriod{
			Start: from.Format("2006-01-02 15:04:05"),
			End:   to.Format("2006-01-02 15:04:05"),
			Hours: hours,
		},
		AuditReport: report,
	})
}

// Status handles GET /api/status: report upstream connectivity.
func (h *AuditHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := "connected"
	if err := h.fetcher.CheckConnection(r.Context()); err != nil {
		logger.Warn("upstream connection check failed", "error", err)
		status = "disconnected"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"clickup":   status,
		"timestamp": h.now().Format(time.RFC3339),
	})
}
