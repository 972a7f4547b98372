package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/transparentmetrics/fundamentals-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect build history",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded builds",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		status, _ := cmd.Flags().GetString("status")
		ticker, _ := cmd.Flags().GetString("ticker")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := st.ListBuilds(ctx, store.BuildFilter{
			Status: store.BuildStatus(status),
			Ticker: strings.ToUpper(ticker),
			Limit:  limit,
		})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No builds found.")
			return nil
		}

		formatBuildList(os.Stdout, runs)
		return nil
	},
}

func formatBuildList(w io.Writer, runs []store.BuildRun) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tTICKER\tSOURCE\tSTATUS\tOUTPUT\tERROR")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Ticker,
			r.Source,
			r.Status,
			r.OutputPath,
			r.Error,
		)
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	runsListCmd.Flags().String("status", "", "filter by build status (ok, failed, skipped)")
	runsListCmd.Flags().String("ticker", "", "filter by ticker")
	runsListCmd.Flags().Int("limit", 50, "max number of builds to display")

	runsCmd.AddCommand(runsListCmd)
	rootCmd.AddCommand(runsCmd)
}
