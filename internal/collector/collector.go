package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"TickerWatch/internal/logger"
	"TickerWatch/internal/model"
)

// ErrNoData is returned when the data source has no bars for the request.
var ErrNoData = errors.New("no data available")

// Collector fetches price history for one configured symbol.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol}
}

// History fetches the symbol's bars over period at interval. Intervals the
// source does not serve natively are built by aggregating smaller bars.
// An empty result is reported as ErrNoData.
func (c *Collector) History(ctx context.Context, period, interval string) (*model.PriceSeries, error) {
	spec, ok := ValidIntervals[interval]
	if !ok {
		return nil, fmt.Errorf("unsupported interval %q", interval)
	}

	op := logger.StartOperation(ctx, "collector.history",
		"source", c.Fetcher.Name(), "symbol", c.Symbol, "period", period, "interval", interval)
	bars, err := c.Fetcher.FetchHistory(op.Context(), c.Symbol, period, spec.native)
	if err != nil {
		op.EndWithError(err)
		return nil, fmt.Errorf("fetch %s %s: %w", period, interval, err)
	}
	if spec.bucket > 0 {
		bars = aggregateBars(bars, spec.bucket)
	}
	if len(bars) == 0 {
		op.EndWithError(ErrNoData)
		return nil, fmt.Errorf("fetch %s %s: %w", period, interval, ErrNoData)
	}
	op.End("bars", len(bars))

	return &model.PriceSeries{
		Symbol:    c.Symbol,
		Interval:  interval,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}
