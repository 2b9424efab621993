package model

// Timeframe is one row of the multi-timeframe report.
type Timeframe struct {
	Label    string // shown to the user, e.g. "4H"
	Interval string // bar interval, e.g. "4h"
	Period   string // history window, e.g. "7d"
}

// IndicatorSet holds the indicators computed at the latest bar of a series.
// A nil pointer field means the series was too short for that indicator.
type IndicatorSet struct {
	LastPrice  float64
	LastVolume float64
	AvgVolume  float64
	EMA20      *float64
	EMA50      *float64
	RSI        *float64
	MACD       *float64
	MACDSignal *float64
	ATR        *float64
	Momentum   *float64
}

// Trend is "bullish" when EMA20 sits above EMA50.
func (s *IndicatorSet) Bullish() bool {
	return s.EMA20 != nil && s.EMA50 != nil && *s.EMA20 > *s.EMA50
}

// BreakoutConfirmed requires MACD above its signal line and RSI above 55.
func (s *IndicatorSet) BreakoutConfirmed() bool {
	if s.MACD == nil || s.MACDSignal == nil || s.RSI == nil {
		return false
	}
	return *s.MACD > *s.MACDSignal && *s.RSI > 55
}

// TimeframeReport is the analysis result of one timeframe. Err is set when the
// timeframe had no data; Indicators is nil in that case.
type TimeframeReport struct {
	Timeframe  Timeframe
	Indicators *IndicatorSet
	Err        error
}
