package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"TickerWatch/internal/analysis"
	"TickerWatch/internal/collector"
	"TickerWatch/internal/config"
	"TickerWatch/internal/logger"
	"TickerWatch/internal/news"
	"TickerWatch/internal/recorder"
	"TickerWatch/internal/strategy"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// App carries the components shared by every subcommand.
type App struct {
	Config     *config.Config
	Collector  *collector.Collector
	Analyzer   *analysis.Analyzer
	Strategies *strategy.Calculator
	News       *news.Feed
}

func main() {
	_ = godotenv.Load()

	app := &App{}
	root := &cobra.Command{
		Use:           "tickerwatch",
		Short:         "Telegram technical-analysis bot for a single ticker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd.Name() == "serve")
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return logger.Shutdown(ctx)
		},
	}
	root.AddCommand(newServeCmd(app))
	root.AddCommand(newAnalyzeCmd(app))
	root.AddCommand(newStrategyCmd(app))
	root.AddCommand(newNewsCmd(app))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *App) init(serving bool) error {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serving {
		err = cfg.ValidateServe()
	} else {
		err = cfg.Validate()
	}
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := logger.Init(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Tracing: cfg.Log.Tracing,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	logger.Info(context.Background(), "market data source", "source", fetcher.Name(), "symbol", cfg.Market.Symbol)

	a.Config = cfg
	a.Collector = collector.NewCollector(fetcher, cfg.Market.Symbol)
	a.Analyzer = analysis.NewAnalyzer(a.Collector)
	a.Strategies = strategy.NewCalculator(a.Collector)
	a.News = news.NewFeed(cfg.News.Query, cfg.News.MaxItems, cfg.Proxy)
	return nil
}

// openRecorder returns the sqlite journal when configured, otherwise a noop.
func (a *App) openRecorder(ctx context.Context) recorder.Recorder {
	if a.Config.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(a.Config.Database.SQLitePath)
	if err != nil {
		logger.Warn(ctx, "init sqlite recorder failed, using noop", "error", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}
