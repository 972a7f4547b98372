package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/transparentmetrics/fundamentals-cli/internal/fundamentals"
	"github.com/transparentmetrics/fundamentals-cli/internal/store"
)

var buildTablePath string

var buildCmd = &cobra.Command{
	Use:   "build <ticker>",
	Short: "Build a fundamentals document from the local table",
	Long:  "Looks the ticker up in the local CSV or XLSX fundamentals table and writes its JSON document.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ticker := strings.ToUpper(strings.TrimSpace(args[0]))

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		tablePath := buildTablePath
		if tablePath == "" {
			tablePath = cfg.Local.TablePath
		}

		table, err := fundamentals.LoadTable(tablePath)
		if err != nil {
			return eris.Wrapf(err, "build: load table %s", tablePath)
		}

		row, ok := table.Row(ticker)
		if !ok {
			recordBuild(ctx, st, store.BuildRun{
				Ticker: ticker,
				Source: "local",
				Status: store.BuildStatusFailed,
				Error:  "ticker not found in table",
			})
			return eris.Errorf("build: ticker %s not found in %s", ticker, tablePath)
		}

		doc := fundamentals.FromRow(row)
		path, err := fundamentals.WriteDocument(cfg.Output.Dir, ticker, doc)
		if err != nil {
			recordBuild(ctx, st, store.BuildRun{
				Ticker: ticker,
				Source: "local",
				Status: store.BuildStatusFailed,
				Error:  err.Error(),
			})
			return eris.Wrapf(err, "build: write document for %s", ticker)
		}

		recordBuild(ctx, st, store.BuildRun{
			Ticker:     ticker,
			Source:     "local",
			Status:     store.BuildStatusOK,
			OutputPath: path,
		})
		zap.L().Info("built document",
			zap.String("ticker", ticker),
			zap.String("path", path),
		)
		return nil
	},
}

// recordBuild writes a ledger row. Ledger failures are logged, not fatal; the
// document on disk is the product, the ledger is bookkeeping.
func recordBuild(ctx context.Context, st store.Store, run store.BuildRun) {
	if _, err := st.RecordBuild(ctx, run); err != nil {
		zap.L().Warn("record build", zap.String("ticker", run.Ticker), zap.Error(err))
	}
}

func init() {
	buildCmd.Flags().StringVar(&buildTablePath, "table", "", "fundamentals table path (default from config)")
	rootCmd.AddCommand(buildCmd)
}
