// Package api wires the HTTP surface: routing, CORS and the middleware
// chain around the audit handlers.
package api

import (
	"net/http"
	"strings"

	"timecop/internal/api/handlers"
	"timecop/internal/api/middleware"
	"timecop/internal/config"
	"timecop/internal/logger"
	"timecop/internal/storage"
)

// Router is the top-level HTTP handler.
type Router struct {
	mux            *http.ServeMux
	allowedOrigins []string
	maxBodySize    int64
}

// NewRouter builds the route table and handler set.
func NewRouter(cfg *config.Config, fetcher handlers.Fetcher, store *storage.Store) *Router {
	mux := http.NewServeMux()

	auditHandler := handlers.NewAuditHandler(fetcher, store, cfg.Audit.ShortThresholdSeconds, cfg.Audit.DefaultWindowHours)
	runsHandler := handlers.NewRunsHandler(store)

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeInfo(w)
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			if err := store.Ping(); err != nil {
				logger.Error("health check failed", "error", err)
				writeHealth(w, http.StatusServiceUnavailable, "unhealthy")
				return
			}
		}
		writeHealth(w, http.StatusOK, "healthy")
	})

	mux.HandleFunc("GET /api/audit", auditHandler.RunAudit)
	mux.HandleFunc("GET /api/status", auditHandler.Status)
	mux.HandleFunc("GET /api/runs", runsHandler.ListRuns)

	return &Router{
		mux:            mux,
		allowedOrigins: cfg.Server.AllowedOrigins,
		maxBodySize:    cfg.Server.MaxBodySize,
	}
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := chainMiddleware(
		rt.mux,
		middleware.RequestID,
		middleware.LimitBodySize(rt.maxBodySize),
		rt.corsMiddleware,
	)
	handler.ServeHTTP(w, req)
}

func chainMiddleware(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// corsMiddleware applies the configured origin policy. An empty allow-list
// means allow all origins.
func (rt *Router) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")

		if len(rt.allowedOrigins) == 0 {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && rt.isOriginAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func (rt *Router) isOriginAllowed(origin string) bool {
	for _, allowed := range rt.allowedOrigins {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	return false
}

func writeInfo(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"service":"timecop","message":"ClickUp time entry auditing","endpoints":["/health","/api/audit","/api/status","/api/runs"]}` + "\n"))
}

func writeHealth(w http.ResponseWriter, status int, state string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"status":"` + state + `"}` + "\n"))
}
