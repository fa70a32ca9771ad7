package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/narrator/history"
	"github.com/tranvictor/narrator/reader"
	"github.com/tranvictor/narrator/util"
)

var narrateIncludeFailed bool

var narrateCmd = &cobra.Command{
	Use:   "narrate <tx hash> [tx hash...]",
	Short: "Tell the story of up to 20 transactions",
	Long: `Fetch each transaction and its receipt from the node, decode it and join the
narratives into one story in the order the hashes were given.

Failed, pending and unknown-status transactions are left out of the story
unless --include-failed is set.`,
	Args: cobra.RangeArgs(1, history.MaxHashes),
	RunE: func(cmd *cobra.Command, args []string) error {
		hashes, err := history.ParseHashes(args)
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		r, err := a.dial(ctx)
		if err != nil {
			return err
		}

		analyzer := history.NewAnalyzer(r, a.decoder, a.generator(reader.NewTokenCache(r)), a.logger).
			WithWorkers(a.cfg.Workers)

		var report *history.Report
		func() {
			stop := a.ui.Spinner("Fetching transactions...")
			defer stop()
			report, err = analyzer.AnalyzeHistory(ctx, history.Request{
				Hashes:        hashes,
				IncludeFailed: narrateIncludeFailed,
			})
		}()
		if err != nil {
			return err
		}
		a.logger.Sugar().Debugw("Analyzed transactions",
			zap.Int("requested", len(hashes)),
			zap.Int("analyzed", report.TransactionsAnalyzed),
			zap.Int("failed", report.TransactionsFailed),
		)

		if a.cfg.JSON {
			return a.ui.JSON(report)
		}
		util.DisplayReport(a.ui, report)
		return nil
	},
}

func init() {
	narrateCmd.Flags().BoolVar(&narrateIncludeFailed, "include-failed", false, "Keep failed, pending and unknown-status transactions in the story")
	rootCmd.AddCommand(narrateCmd)
}
