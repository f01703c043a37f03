package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timecop/internal/api"
	"timecop/internal/config"
	"timecop/internal/model"
	"timecop/internal/storage"
)

// fakeFetcher serves canned entries instead of calling ClickUp.
type fakeFetcher struct {
	entries []model.TimeEntry
	err     error
}

func (f *fakeFetcher) FetchWindow(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	return f.entries, f.err
}

func (f *fakeFetcher) CheckConnection(ctx context.Context) error {
	return f.err
}

func newTestRouter(t *testing.T, fetcher *fakeFetcher) *api.Router {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "timecop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{}
	cfg.Audit.ShortThresholdSeconds = 300
	cfg.Audit.DefaultWindowHours = 9.5
	cfg.Server.MaxBodySize = 1 << 20

	return api.NewRouter(cfg, fetcher, store)
}

func doRequest(router *api.Router, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func entry(id, userID string, duration int64) model.TimeEntry {
	return model.TimeEntry{
		ID:              id,
		TaskID:          "task-1",
		TaskName:        "Sprint work",
		UserID:          userID,
		UserName:        "user-" + userID,
		DurationSeconds: duration,
		Start:           time.Now().Add(-time.Hour),
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &fakeFetcher{})

	rec := doRequest(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAudit_OK(t *testing.T) {
	fetcher := &fakeFetcher{entries: []model.TimeEntry{
		entry("e1", "u1", 0),
		entry("e2", "u1", 120),
		entry("e3", "u2", 3600),
	}}
	router := newTestRouter(t, fetcher)

	rec := doRequest(router, http.MethodGet, "/api/audit?hours=4")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success     bool `json:"success"`
		AuditPeriod struct {
			Hours float64 `json:"hours"`
		} `json:"audit_period"`
		TotalEntriesScanned int            `json:"total_entries_scanned"`
		FlagsByUser         map[string]int `json:"flags_by_user"`
		Summary             model.Summary  `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 4.0, resp.AuditPeriod.Hours)
	assert.Equal(t, 3, resp.TotalEntriesScanned)
	assert.Equal(t, 2, resp.FlagsByUser["u1"])
	assert.Equal(t, model.Summary{Total: 3, Fraud: 1, Potential: 1, Clean: 1}, resp.Summary)
}

func TestAudit_PersistsRunSummary(t *testing.T) {
	fetcher := &fakeFetcher{entries: []model.TimeEntry{entry("e1", "u1", 0)}}
	router := newTestRouter(t, fetcher)

	require.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/api/audit").Code)

	rec := doRequest(router, http.MethodGet, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []storage.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Scanned)
	assert.Equal(t, 1, runs[0].Fraud)
	assert.Equal(t, 9.5, runs[0].WindowHours)
}

func TestAudit_BadHoursParam(t *testing.T) {
	router := newTestRouter(t, &fakeFetcher{})

	for _, target := range []string{"/api/audit?hours=abc", "/api/audit?hours=0", "/api/audit?hours=-2"} {
		rec := doRequest(router, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestAudit_UpstreamFailure(t *testing.T) {
	router := newTestRouter(t, &fakeFetcher{err: errors.New("clickup API error 500: boom")})

	rec := doRequest(router, http.MethodGet, "/api/audit")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to fetch")
}

func TestAudit_InvalidInput(t *testing.T) {
	// A negative duration slipping past the fetch boundary must surface as 422.
	router := newTestRouter(t, &fakeFetcher{entries: []model.TimeEntry{entry("e1", "u1", -5)}})

	rec := doRequest(router, http.MethodGet, "/api/audit")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "negative duration")
}

func TestStatus(t *testing.T) {
	router := newTestRouter(t, &fakeFetcher{})
	rec := doRequest(router, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"connected"`)

	router = newTestRouter(t, &fakeFetcher{err: errors.New("clickup API error 401: Token invalid")})
	rec = doRequest(router, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"disconnected"`)
}

func TestRootAndNotFound(t *testing.T) {
	router := newTestRouter(t, &fakeFetcher{})

	rec := doRequest(router, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "timecop")

	rec = doRequest(router, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	router := newTestRouter(t, &fakeFetcher{})

	req := httptest.NewRequest(http.MethodOptions, "/api/audit", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
