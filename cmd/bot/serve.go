package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"TickerWatch/internal/config"
	"TickerWatch/internal/logger"
	"TickerWatch/internal/notifier"
	"TickerWatch/internal/router"
	"TickerWatch/internal/scheduler"
	"TickerWatch/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var reportOnStart bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot (webhook server or long polling)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.serve(cmd.Context(), reportOnStart)
		},
	}
	cmd.Flags().BoolVar(&reportOnStart, "report-on-start", false, "send the analysis report to the admin chat at startup")
	return cmd
}

func (a *App) serve(parent context.Context, reportOnStart bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := a.Config
	rec := a.openRecorder(ctx)
	defer rec.Close()

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.APIBaseURL, cfg.Proxy)
	r := router.New(router.Options{
		Symbol:        cfg.Market.Symbol,
		QuoteCurrency: cfg.Market.QuoteCurrency,
		AdminChatID:   cfg.Telegram.AdminChatID,
		SignalSecret:  cfg.Webhook.Secret,
	}, tn, a.Analyzer, a.Strategies, a.News, rec)

	if cfg.Schedule.ReportCron != "" || reportOnStart {
		sched := scheduler.NewScheduler(ctx, r)
		if cfg.Schedule.ReportCron != "" {
			if err := sched.RegisterReport(cfg.Schedule.ReportCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()
		}
		if reportOnStart {
			go sched.RunNow()
		}
	}

	if cfg.Telegram.Mode == config.ModePolling {
		logger.Info(ctx, "telegram polling started", "symbol", cfg.Market.Symbol)
		tn.StartPolling(ctx, r.Handle)
		return nil
	}

	ws := server.NewWebhookServer(cfg.Webhook.Addr, r)
	errCh := make(chan error, 1)
	go func() { errCh <- ws.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info(context.Background(), "shutdown signal received, stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ws.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}
