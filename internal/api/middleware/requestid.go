package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"timecop/internal/logger"
)

// ContextKey is the type for context keys set by middleware.
type ContextKey string

// RequestIDContextKey is the context key for the request ID.
const RequestIDContextKey ContextKey = "request_id"

// GetRequestID extracts the request ID from the request context.
func GetRequestID(r *http.Request) string {
	if requestID, ok := r.Context().Value(RequestIDContextKey).(string); ok {
		return requestID
	}
	return ""
}

// RequestID attaches a unique ID to each request, honouring an inbound
// X-Request-ID header, and logs the request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", requestID)

		logger.Info("request received", "request_id", requestID, "method", r.Method, "path", r.URL.Path, "ip", r.RemoteAddr)

		next.ServeHTTP(w, r)
	})
}
