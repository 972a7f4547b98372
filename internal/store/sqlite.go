package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS builds (
	id          TEXT PRIMARY KEY,
	ticker      TEXT NOT NULL,
	source      TEXT NOT NULL,
	status      TEXT NOT NULL,
	output_path TEXT,
	error       TEXT,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_builds_ticker ON builds(ticker);
CREATE INDEX IF NOT EXISTS idx_builds_status ON builds(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordBuild(ctx context.Context, run BuildRun) (*BuildRun, error) {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (id, ticker, source, status, output_path, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Ticker, run.Source, string(run.Status), run.OutputPath, run.Error, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert build for %s", run.Ticker)
	}
	return &run, nil
}

func (s *SQLiteStore) ListBuilds(ctx context.Context, filter BuildFilter) ([]BuildRun, error) {
	query := `SELECT id, ticker, source, status, output_path, error, created_at FROM builds WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Ticker != "" {
		query += ` AND ticker = ?`
		args = append(args, filter.Ticker)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list builds")
	}
	defer rows.Close()

	var runs []BuildRun
	for rows.Next() {
		var r BuildRun
		var outputPath, errMsg sql.NullString
		if err := rows.Scan(&r.ID, &r.Ticker, &r.Source, &r.Status, &outputPath, &errMsg, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan build")
		}
		r.OutputPath = outputPath.String
		r.Error = errMsg.String
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list builds iterate")
}
