package router

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"TickerWatch/internal/logger"
	"TickerWatch/internal/model"
	"TickerWatch/internal/notifier"
	"TickerWatch/internal/recorder"
	"TickerWatch/internal/strategy"
)

// ErrUnauthorized is returned when a signal carries the wrong bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// Sender delivers a text message to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// ReportRunner produces the multi-timeframe analysis.
type ReportRunner interface {
	Run(ctx context.Context) []model.TimeframeReport
}

// StrategyRunner computes a strategy for the configured symbol.
type StrategyRunner interface {
	Run(ctx context.Context, mode model.StrategyMode, entryText string) (*model.StrategyResult, error)
}

// NewsSource returns the latest headlines.
type NewsSource interface {
	Latest(ctx context.Context) ([]model.NewsItem, error)
}

// Options carries the static settings of a Router.
type Options struct {
	Symbol        string
	QuoteCurrency string
	AdminChatID   string
	SignalSecret  string
}

// Router turns chat messages and external signals into outbound messages.
type Router struct {
	opts       Options
	sender     Sender
	analyzer   ReportRunner
	strategies StrategyRunner
	news       NewsSource
	recorder   recorder.Recorder
}

// New creates a Router. A nil recorder disables the journal.
func New(opts Options, sender Sender, analyzer ReportRunner, strategies StrategyRunner, news NewsSource, rec recorder.Recorder) *Router {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Router{
		opts:       opts,
		sender:     sender,
		analyzer:   analyzer,
		strategies: strategies,
		news:       news,
		recorder:   rec,
	}
}

// Handle answers one chat message. Failures are reported to the chat as text
// and never returned.
func (r *Router) Handle(ctx context.Context, chatID, text string) {
	intent := ParseIntent(text)
	logger.Info(ctx, "chat message", "chat_id", chatID, "intent", intent.String())

	switch intent {
	case IntentAnalysis:
		r.send(ctx, chatID, r.Report(ctx))
		r.send(ctx, chatID, notifier.StrategyPrompt)
	case IntentSwing:
		r.send(ctx, chatID, r.strategy(ctx, chatID, model.StrategySwing, ""))
	case IntentLongPrompt:
		r.send(ctx, chatID, notifier.LongEntryPrompt)
	case IntentLongEntry:
		r.send(ctx, chatID, r.strategy(ctx, chatID, model.StrategyLong, normalize(text)))
	case IntentNews:
		r.send(ctx, chatID, r.headlines(ctx))
	default:
		r.send(ctx, chatID, notifier.HelpText(r.opts.Symbol))
	}
}

// Report runs the analysis and renders it.
func (r *Router) Report(ctx context.Context) string {
	return notifier.FormatReport(r.opts.Symbol, r.opts.QuoteCurrency, r.analyzer.Run(ctx))
}

func (r *Router) strategy(ctx context.Context, chatID string, mode model.StrategyMode, entryText string) string {
	res, err := r.strategies.Run(ctx, mode, entryText)
	switch {
	case errors.Is(err, strategy.ErrInvalidEntry):
		return notifier.InvalidEntryText
	case err != nil:
		logger.Warn(ctx, "strategy unavailable", "mode", string(mode), "error", err)
		return notifier.DataUnavailableText
	}

	if err := r.recorder.RecordStrategy(&recorder.StrategyEvent{
		RequestID:  logger.RequestID(ctx),
		ChatID:     chatID,
		Mode:       string(res.Mode),
		Entry:      res.Entry.String(),
		TakeProfit: res.TakeProfit.String(),
		StopLoss:   res.StopLoss.String(),
		ATR:        res.ATR.String(),
	}); err != nil {
		logger.ErrorWithErr(ctx, "record strategy", err)
	}
	return notifier.FormatStrategy(res, r.opts.QuoteCurrency)
}

func (r *Router) headlines(ctx context.Context) string {
	items, err := r.news.Latest(ctx)
	if err != nil {
		logger.Warn(ctx, "news unavailable", "error", err)
		return notifier.NoNewsText
	}
	return notifier.FormatNews(r.opts.Symbol, items)
}

// Authorized reports whether token matches the configured signal secret.
// An empty secret authorizes nothing.
func (r *Router) Authorized(token string) bool {
	if r.opts.SignalSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(r.opts.SignalSecret)) == 1
}

// RelaySignal forwards an external signal to the admin chat after checking token.
func (r *Router) RelaySignal(ctx context.Context, token string, alert *model.SignalAlert) error {
	if !r.Authorized(token) {
		logger.Warn(ctx, "signal rejected", "reason", "bad token")
		return ErrUnauthorized
	}
	if err := r.sender.SendMessage(ctx, r.opts.AdminChatID, notifier.FormatSignalAlert(alert)); err != nil {
		return fmt.Errorf("relay signal: %w", err)
	}
	if err := r.recorder.RecordSignal(&recorder.SignalEvent{
		RequestID: logger.RequestID(ctx),
		Ticker:    alert.Ticker,
		Signal:    alert.Signal,
		Price:     fmt.Sprint(alert.Price),
	}); err != nil {
		logger.ErrorWithErr(ctx, "record signal", err)
	}
	logger.Info(ctx, "signal relayed", "ticker", alert.Ticker, "signal", alert.Signal)
	return nil
}

// SendReport pushes the analysis report to the admin chat.
func (r *Router) SendReport(ctx context.Context) {
	r.send(ctx, r.opts.AdminChatID, r.Report(ctx))
}

func (r *Router) send(ctx context.Context, chatID, text string) {
	if err := r.sender.SendMessage(ctx, chatID, text); err != nil {
		logger.ErrorWithErr(ctx, "send message", err, "chat_id", chatID)
	}
}
