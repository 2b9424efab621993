package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"TickerWatch/internal/model"
	"TickerWatch/internal/news"
	"TickerWatch/internal/notifier"

	"github.com/spf13/cobra"
)

const oneShotTimeout = 60 * time.Second

func newAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Print the multi-timeframe analysis report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
			defer cancel()

			reports := app.Analyzer.Run(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatReport(app.Config.Market.Symbol, app.Config.Market.QuoteCurrency, reports))
			return nil
		},
	}
}

func newStrategyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "strategy swing|long [entry]",
		Short: "Print take-profit and stop-loss levels",
		Example: `  tickerwatch strategy swing
  tickerwatch strategy long 3.25`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := model.StrategyMode(args[0])
			var entry string
			switch mode {
			case model.StrategySwing:
			case model.StrategyLong:
				if len(args) < 2 {
					return errors.New("long strategy needs an entry price")
				}
				entry = args[1]
			default:
				return fmt.Errorf("unknown strategy %q", args[0])
			}

			ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
			defer cancel()

			res, err := app.Strategies.Run(ctx, mode, entry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatStrategy(res, app.Config.Market.QuoteCurrency))
			return nil
		},
	}
}

func newNewsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Print the latest headlines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
			defer cancel()

			items, err := app.News.Latest(ctx)
			if err != nil && !errors.Is(err, news.ErrNoNews) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatNews(app.Config.Market.Symbol, items))
			return nil
		},
	}
}
