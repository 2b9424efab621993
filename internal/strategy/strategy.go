package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"TickerWatch/internal/calculator"
	"TickerWatch/internal/collector"
	"TickerWatch/internal/logger"
	"TickerWatch/internal/model"
)

// ErrInvalidEntry is returned when the long entry price is missing, not a number or not positive.
var ErrInvalidEntry = errors.New("invalid entry price")

// ATRPeriod is the ATR window used for every strategy.
const ATRPeriod = 14

// Strategies are always computed on one month of daily bars.
const (
	HistoryPeriod   = "1mo"
	HistoryInterval = "1d"
)

// Multipliers scales the ATR into take-profit and stop-loss distances.
type Multipliers struct {
	TakeProfit decimal.Decimal
	StopLoss   decimal.Decimal
}

// Modes defines the ATR multipliers per strategy mode.
var Modes = map[model.StrategyMode]Multipliers{
	model.StrategySwing: {TakeProfit: decimal.RequireFromString("1.5"), StopLoss: decimal.NewFromInt(1)},
	model.StrategyLong:  {TakeProfit: decimal.NewFromInt(2), StopLoss: decimal.RequireFromString("1.5")},
}

// Levels derives take-profit and stop-loss from an entry price and ATR.
func Levels(mode model.StrategyMode, entry, atr decimal.Decimal) (*model.StrategyResult, error) {
	m, ok := Modes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown strategy mode %q", mode)
	}
	return &model.StrategyResult{
		Mode:       mode,
		Entry:      entry,
		TakeProfit: entry.Add(m.TakeProfit.Mul(atr)),
		StopLoss:   entry.Sub(m.StopLoss.Mul(atr)),
		ATR:        atr,
	}, nil
}

// ParseEntry parses a user-typed entry price. It must be a positive number.
func ParseEntry(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, fmt.Errorf("%w: missing", ErrInvalidEntry)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidEntry, text)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s is not positive", ErrInvalidEntry, d)
	}
	return d, nil
}

// Compute runs mode over a daily series. Swing enters at the last close;
// long enters at entryText, which is validated before the series is used.
func Compute(mode model.StrategyMode, series *model.PriceSeries, entryText string) (*model.StrategyResult, error) {
	var entry decimal.Decimal
	switch mode {
	case model.StrategyLong:
		e, err := ParseEntry(entryText)
		if err != nil {
			return nil, err
		}
		entry = e
	case model.StrategySwing:
		if series.Empty() {
			return nil, collector.ErrNoData
		}
		entry = decimal.NewFromFloat(series.Last().Close)
	default:
		return nil, fmt.Errorf("unknown strategy mode %q", mode)
	}

	if series.Empty() {
		return nil, collector.ErrNoData
	}
	atr, err := calculator.LastATR(series.Bars, ATRPeriod)
	if err != nil {
		return nil, fmt.Errorf("atr: %w", err)
	}
	return Levels(mode, entry, decimal.NewFromFloat(atr))
}

// Calculator fetches the daily history and computes strategies on it.
type Calculator struct {
	Collector *collector.Collector
}

// NewCalculator creates a new Calculator.
func NewCalculator(col *collector.Collector) *Calculator {
	return &Calculator{Collector: col}
}

// Run computes mode for the configured symbol. An invalid long entry is
// rejected without touching the data source.
func (c *Calculator) Run(ctx context.Context, mode model.StrategyMode, entryText string) (*model.StrategyResult, error) {
	if mode == model.StrategyLong {
		if _, err := ParseEntry(entryText); err != nil {
			return nil, err
		}
	}
	series, err := c.Collector.History(ctx, HistoryPeriod, HistoryInterval)
	if err != nil {
		return nil, err
	}
	res, err := Compute(mode, series, entryText)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "strategy computed", "mode", string(mode),
		"entry", res.Entry.String(), "take_profit", res.TakeProfit.String(), "stop_loss", res.StopLoss.String())
	return res, nil
}
