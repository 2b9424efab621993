package model

import "github.com/shopspring/decimal"

// StrategyMode selects the take-profit / stop-loss multipliers.
type StrategyMode string

const (
	StrategySwing StrategyMode = "swing"
	StrategyLong  StrategyMode = "long"
)

// StrategyResult is the outcome of a strategy computation, in quote currency.
type StrategyResult struct {
	Mode       StrategyMode
	Entry      decimal.Decimal
	TakeProfit decimal.Decimal
	StopLoss   decimal.Decimal
	ATR        decimal.Decimal
}

// SignalAlert is the payload posted by an external trading-signal source.
// Price is kept as received so it can be relayed verbatim.
type SignalAlert struct {
	Ticker string `json:"ticker"`
	Signal string `json:"signal"`
	Price  any    `json:"price"`
}

// NewsItem is one headline from the news feed.
type NewsItem struct {
	Title string
	Link  string
}
