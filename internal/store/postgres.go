package store

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it,
// which keeps the Postgres store unit-testable without a database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS builds (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	ticker      TEXT NOT NULL,
	source      TEXT NOT NULL,
	status      TEXT NOT NULL,
	output_path TEXT,
	error       TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_builds_ticker ON builds(ticker);
CREATE INDEX IF NOT EXISTS idx_builds_status ON builds(status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) RecordBuild(ctx context.Context, run BuildRun) (*BuildRun, error) {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO builds (id, ticker, source, status, output_path, error, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.Ticker, run.Source, string(run.Status), run.OutputPath, run.Error, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert build for %s", run.Ticker)
	}
	return &run, nil
}

func (s *PostgresStore) ListBuilds(ctx context.Context, filter BuildFilter) ([]BuildRun, error) {
	query := `SELECT id, ticker, source, status, output_path, error, created_at FROM builds WHERE 1=1`
	var args []any

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Ticker != "" {
		args = append(args, filter.Ticker)
		query += ` AND ticker = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list builds")
	}
	defer rows.Close()

	var runs []BuildRun
	for rows.Next() {
		var r BuildRun
		var outputPath, errMsg *string
		if err := rows.Scan(&r.ID, &r.Ticker, &r.Source, &r.Status, &outputPath, &errMsg, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan build")
		}
		if outputPath != nil {
			r.OutputPath = *outputPath
		}
		if errMsg != nil {
			r.Error = *errMsg
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list builds iterate")
}
