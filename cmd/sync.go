package main

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/transparentmetrics/fundamentals-cli/internal/edgar"
	"github.com/transparentmetrics/fundamentals-cli/internal/fetcher"
	"github.com/transparentmetrics/fundamentals-cli/internal/fundamentals"
	"github.com/transparentmetrics/fundamentals-cli/internal/store"
)

var (
	syncResolve     bool
	syncConcurrency int
)

var syncCmd = &cobra.Command{
	Use:   "sync [ticker...]",
	Short: "Build fundamentals documents from SEC EDGAR",
	Long:  "Fetches company facts from the SEC EDGAR XBRL API for each ticker and writes one JSON document per ticker. A ticker that fails is logged and skipped; the rest of the batch continues.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tickers := args
		if len(tickers) == 0 {
			tickers = cfg.Edgar.Tickers
		}
		if len(tickers) == 0 {
			return eris.New("sync: no tickers given and none configured")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		extractor, err := loadExtractor()
		if err != nil {
			return err
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:    cfg.Edgar.UserAgent,
			Timeout:      cfg.Edgar.Timeout(),
			RateLimiters: fetcher.SECRateLimiters(cfg.Edgar.RequestPause()),
		})
		client := edgar.NewClient(f,
			edgar.WithBaseURL(cfg.Edgar.BaseURL),
			edgar.WithTickerMapURL(cfg.Edgar.TickerMapURL),
		)

		cikMap := make(map[string]string, len(cfg.Edgar.CIKMap))
		for ticker, cik := range cfg.Edgar.CIKMap {
			cikMap[strings.ToUpper(ticker)] = cik
		}

		if syncResolve {
			resolved, err := client.TickerMap(ctx)
			if err != nil {
				return eris.Wrap(err, "sync: fetch ticker directory")
			}
			for ticker, cik := range resolved {
				if _, ok := cikMap[ticker]; !ok {
					cikMap[ticker] = cik
				}
			}
		}

		g, gctx := errgroup.WithContext(ctx)
		concurrency := syncConcurrency
		if concurrency < 1 {
			concurrency = 1
		}
		g.SetLimit(concurrency)

		for _, raw := range tickers {
			ticker := strings.ToUpper(strings.TrimSpace(raw))
			g.Go(func() error {
				syncOne(gctx, st, client, extractor, cikMap, ticker)
				return nil
			})
		}
		return g.Wait()
	},
}

func syncOne(ctx context.Context, st store.Store, client *edgar.Client, extractor *fundamentals.Extractor, cikMap map[string]string, ticker string) {
	cik, ok := cikMap[ticker]
	if !ok {
		zap.L().Warn("no CIK mapping, skipping", zap.String("ticker", ticker))
		recordBuild(ctx, st, store.BuildRun{
			Ticker: ticker,
			Source: "edgar",
			Status: store.BuildStatusSkipped,
			Error:  "no CIK mapping",
		})
		return
	}

	facts, err := client.CompanyFacts(ctx, cik)
	if err != nil {
		zap.L().Warn("fetch company facts failed, skipping",
			zap.String("ticker", ticker),
			zap.String("cik", cik),
			zap.Error(err),
		)
		recordBuild(ctx, st, store.BuildRun{
			Ticker: ticker,
			Source: "edgar",
			Status: store.BuildStatusFailed,
			Error:  err.Error(),
		})
		return
	}

	doc := extractor.FromFacts(facts)
	path, err := fundamentals.WriteDocument(cfg.Output.Dir, ticker, doc)
	if err != nil {
		zap.L().Warn("write document failed",
			zap.String("ticker", ticker),
			zap.Error(err),
		)
		recordBuild(ctx, st, store.BuildRun{
			Ticker: ticker,
			Source: "edgar",
			Status: store.BuildStatusFailed,
			Error:  err.Error(),
		})
		return
	}

	recordBuild(ctx, st, store.BuildRun{
		Ticker:     ticker,
		Source:     "edgar",
		Status:     store.BuildStatusOK,
		OutputPath: path,
	})
	zap.L().Info("built document",
		zap.String("ticker", ticker),
		zap.String("asOf", doc.AsOf),
		zap.String("path", path),
	)
}

func init() {
	syncCmd.Flags().BoolVar(&syncResolve, "resolve", false, "resolve unmapped tickers via the SEC ticker directory")
	syncCmd.Flags().IntVar(&syncConcurrency, "concurrency", 1, "tickers processed in parallel; the per-host rate limit still applies")
	rootCmd.AddCommand(syncCmd)
}
