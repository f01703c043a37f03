package handlers

import (
	"encoding/json"
	"net/http"

	"timecop/internal/api/middleware"
	"timecop/internal/logger"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err, "status", status)
	}
}

// writeError writes a standardized error response, including the request ID
// when one is present on the context.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	response := map[string]any{
		"error":  message,
		"status": http.StatusText(status),
	}
	if r != nil {
		if requestID := middleware.GetRequestID(r); requestID != "" {
			response["request_id"] = requestID
		}
	}
	writeJSON(w, status, response)
}
