package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timecop/internal/model"
	"timecop/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "timecop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleReport(scanned, fraud, potential int) *model.AuditReport {
	return &model.AuditReport{
		TotalEntriesScanned: scanned,
		WindowHours:         9.5,
		Summary: model.Summary{
			Total:     scanned,
			Fraud:     fraud,
			Potential: potential,
			Clean:     scanned - fraud - potential,
		},
	}
}

func TestInsertAndListRuns(t *testing.T) {
	store := openStore(t)

	base := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.InsertRun("run-1", base, sampleReport(10, 2, 1)))
	require.NoError(t, store.InsertRun("run-2", base.Add(time.Hour), sampleReport(4, 0, 0)))

	runs, err := store.ListRuns(10, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Most recent first.
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)

	assert.Equal(t, 10, runs[1].Scanned)
	assert.Equal(t, 2, runs[1].Fraud)
	assert.Equal(t, 1, runs[1].Potential)
	assert.Equal(t, 7, runs[1].Clean)
	assert.Equal(t, 9.5, runs[1].WindowHours)
	assert.True(t, runs[1].StartedAt.Equal(base))
}

func TestListRuns_Pagination(t *testing.T) {
	store := openStore(t)

	base := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		require.NoError(t, store.InsertRun("run-"+id, base.Add(time.Duration(i)*time.Minute), sampleReport(1, 0, 0)))
	}

	page, err := store.ListRuns(2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "run-d", page[0].ID)
	assert.Equal(t, "run-c", page[1].ID)
}

func TestListRuns_Empty(t *testing.T) {
	store := openStore(t)

	runs, err := store.ListRuns(10, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
	require.NoError(t, store.Ping())
}
