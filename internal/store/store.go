// Package store persists the build ledger: one row per fundamentals build
// attempt, with its outcome and output location.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/transparentmetrics/fundamentals-cli/internal/config"
)

// BuildStatus is the outcome of a single build attempt.
type BuildStatus string

const (
	BuildStatusOK      BuildStatus = "ok"
	BuildStatusFailed  BuildStatus = "failed"
	BuildStatusSkipped BuildStatus = "skipped"
)

// BuildRun records one build attempt for one ticker.
type BuildRun struct {
	ID         string      `json:"id"`
	Ticker     string      `json:"ticker"`
	Source     string      `json:"source"`
	Status     BuildStatus `json:"status"`
	OutputPath string      `json:"output_path,omitempty"`
	Error      string      `json:"error,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// BuildFilter specifies criteria for listing build runs.
type BuildFilter struct {
	Status BuildStatus `json:"status,omitempty"`
	Ticker string      `json:"ticker,omitempty"`
	Limit  int         `json:"limit,omitempty"`
	Offset int         `json:"offset,omitempty"`
}

// Store defines the persistence interface for the build ledger.
type Store interface {
	RecordBuild(ctx context.Context, run BuildRun) (*BuildRun, error)
	ListBuilds(ctx context.Context, filter BuildFilter) ([]BuildRun, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs the store named by the configuration.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(cfg.Path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
