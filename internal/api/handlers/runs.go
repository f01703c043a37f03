package handlers

import (
	"net/http"
	"strconv"

	"timecop/internal/storage"
)

// RunsHandler serves the stored audit run history.
type RunsHandler struct {
	store *storage.Store
}

// NewRunsHandler creates a RunsHandler.
func NewRunsHandler(store *storage.Store) *RunsHandler {
	return &RunsHandler{store: store}
}

// ListRuns handles GET /api/runs with limit/offset pagination.
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 100
	offset := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	runs, err := h.store.ListRuns(limit, offset)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to list audit runs")
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}
