package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/transparentmetrics/fundamentals-cli/internal/config"
	"github.com/transparentmetrics/fundamentals-cli/internal/fundamentals"
	"github.com/transparentmetrics/fundamentals-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fundamentals",
	Short: "Build fixed-shape fundamentals documents",
	Long:  "Pulls annual XBRL facts from SEC EDGAR or a local table and writes one fundamentals JSON document per ticker.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

func loadExtractor() (*fundamentals.Extractor, error) {
	chains := fundamentals.DefaultChains()
	if cfg.Series.ChainsPath != "" {
		c, err := fundamentals.LoadChains(cfg.Series.ChainsPath)
		if err != nil {
			return nil, err
		}
		chains = c
	}
	limit := cfg.Series.LimitYears
	if limit <= 0 {
		limit = fundamentals.DefaultSeriesLimit
	}
	return fundamentals.NewExtractor(chains, limit), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
