package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cour/internal/history"
	"cour/internal/notion"
	"cour/internal/services"
	"cour/internal/transfer"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleReport(runID string, started time.Time) *transfer.Report {
	return &transfer.Report{
		RunID:          runID,
		Season:         "2025-spring",
		DatabaseID:     "db-1",
		StartedAt:      started,
		FinishedAt:     started.Add(3 * time.Second),
		TotalFetched:   2,
		TotalAttempted: 2,
		TotalSucceeded: 1,
		Outcomes: []notion.Outcome{
			{Title: "Example Anime", Succeeded: true, StatusCode: 200, ResponseBody: `{"object":"page"}`},
			{Title: "Broken", Succeeded: false, StatusCode: 400, ResponseBody: `{"message":"invalid"}`},
		},
	}
}

func TestRecordAndReadBack(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	started := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, sampleReport("run-1", started), services.RunPartial))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, "run-1", run.RunID)
	assert.Equal(t, "2025-spring", run.Season)
	assert.Equal(t, "db-1", run.DatabaseID)
	assert.Equal(t, services.RunPartial, run.Status)
	assert.True(t, started.Equal(run.StartedAt))
	assert.Equal(t, 3*time.Second, run.FinishedAt.Sub(run.StartedAt))
	assert.Equal(t, 2, run.TotalAttempted)
	assert.Equal(t, 1, run.TotalSucceeded)
	assert.Empty(t, run.FetchError)

	outcomes, err := store.Outcomes(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, sampleReport("run-1", started).Outcomes, outcomes)
}

func TestRecentOrdersNewestFirstAndLimits(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, sampleReport("old", base), services.RunCompleted))
	require.NoError(t, store.Record(ctx, sampleReport("new", base.Add(90*time.Minute+500*time.Millisecond)), services.RunCompleted))
	require.NoError(t, store.Record(ctx, sampleReport("mid", base.Add(time.Hour)), services.RunCompleted))

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].RunID)
	assert.Equal(t, "mid", runs[1].RunID)
}

func TestRecordFetchFailureWithoutOutcomes(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	report := &transfer.Report{
		RunID:      "run-fail",
		Season:     "2025-spring",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		FetchError: "annict api error: invalid token",
	}

	require.NoError(t, store.Record(ctx, report, services.RunFetchFailed))

	runs, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, services.RunFetchFailed, runs[0].Status)
	assert.Equal(t, "annict api error: invalid token", runs[0].FetchError)
	assert.Empty(t, runs[0].DatabaseID)

	outcomes, err := store.Outcomes(ctx, "run-fail")
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestRecordRejectsDuplicateRunID(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	report := sampleReport("dup", time.Now())

	require.NoError(t, store.Record(ctx, report, services.RunCompleted))
	assert.Error(t, store.Record(ctx, report, services.RunCompleted))
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), sampleReport("keep", time.Now()), services.RunCompleted))
	require.NoError(t, store.Close())

	reopened, err := history.Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	runs, err := reopened.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "keep", runs[0].RunID)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := history.Open("")
	assert.ErrorIs(t, err, services.ErrConfiguration)
}
