package collector

import (
	"context"

	"TickerWatch/internal/model"
)

// Fetcher defines the interface for fetching market data.
// period is a lookback window such as "7d" or "1mo"; interval is a bar size such as "1h".
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol, period, interval string) ([]model.OHLCV, error)
	Name() string
}
