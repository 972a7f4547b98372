package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS builds`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RecordBuild(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO builds`).
		WithArgs(pgxmock.AnyArg(), "AAPL", "edgar", "ok", "data/AAPL.json", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.RecordBuild(context.Background(), BuildRun{
		Ticker:     "AAPL",
		Source:     "edgar",
		Status:     BuildStatusOK,
		OutputPath: "data/AAPL.json",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RecordBuild_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO builds`).
		WithArgs(pgxmock.AnyArg(), "MSFT", "edgar", "failed", "", "boom", pgxmock.AnyArg()).
		WillReturnError(assert.AnError)

	_, err := s.RecordBuild(context.Background(), BuildRun{
		Ticker: "MSFT",
		Source: "edgar",
		Status: BuildStatusFailed,
		Error:  "boom",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert build")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListBuilds(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	now := time.Now().UTC()
	outputPath := "data/AAPL.json"
	rows := pgxmock.NewRows([]string{"id", "ticker", "source", "status", "output_path", "error", "created_at"}).
		AddRow("run-1", "AAPL", "edgar", BuildStatus("ok"), &outputPath, (*string)(nil), now)

	mock.ExpectQuery(`SELECT id, ticker, source, status, output_path, error, created_at FROM builds`).
		WithArgs("ok", 100).
		WillReturnRows(rows)

	runs, err := s.ListBuilds(context.Background(), BuildFilter{Status: BuildStatusOK})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "AAPL", runs[0].Ticker)
	assert.Equal(t, "data/AAPL.json", runs[0].OutputPath)
	assert.Empty(t, runs[0].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
