package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transparentmetrics/fundamentals-cli/internal/config"
)

func configStore(driver, path string) config.StoreConfig {
	return config.StoreConfig{Driver: driver, Path: path}
}

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_RecordBuild(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.RecordBuild(ctx, BuildRun{
		Ticker:     "AAPL",
		Source:     "edgar",
		Status:     BuildStatusOK,
		OutputPath: "data/AAPL.json",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	runs, err := st.ListBuilds(ctx, BuildFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "AAPL", runs[0].Ticker)
	assert.Equal(t, BuildStatusOK, runs[0].Status)
	assert.Equal(t, "data/AAPL.json", runs[0].OutputPath)
}

func TestSQLite_RecordBuild_Failed(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.RecordBuild(ctx, BuildRun{
		Ticker: "MSFT",
		Source: "edgar",
		Status: BuildStatusFailed,
		Error:  "edgar: fetch company facts: status 404",
	})
	require.NoError(t, err)

	runs, err := st.ListBuilds(ctx, BuildFilter{Status: BuildStatusFailed})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Contains(t, runs[0].Error, "status 404")
	assert.Empty(t, runs[0].OutputPath)
}

func TestSQLite_ListBuilds_Filters(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	seed := []BuildRun{
		{Ticker: "AAPL", Source: "edgar", Status: BuildStatusOK},
		{Ticker: "AAPL", Source: "local", Status: BuildStatusOK},
		{Ticker: "MSFT", Source: "edgar", Status: BuildStatusSkipped},
	}
	for _, r := range seed {
		_, err := st.RecordBuild(ctx, r)
		require.NoError(t, err)
	}

	runs, err := st.ListBuilds(ctx, BuildFilter{Ticker: "AAPL"})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = st.ListBuilds(ctx, BuildFilter{Status: BuildStatusSkipped})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "MSFT", runs[0].Ticker)

	runs, err = st.ListBuilds(ctx, BuildFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLite_ListBuilds_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)

	runs, err := st.ListBuilds(context.Background(), BuildFilter{})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), configStore("mysql", ""))
	assert.Error(t, err)
}

func TestOpen_DefaultsToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	st, err := Open(context.Background(), configStore("", path))
	require.NoError(t, err)
	defer st.Close()
	assert.IsType(t, &SQLiteStore{}, st)
}
