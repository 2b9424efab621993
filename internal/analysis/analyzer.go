package analysis

import (
	"context"

	"TickerWatch/internal/calculator"
	"TickerWatch/internal/collector"
	"TickerWatch/internal/logger"
	"TickerWatch/internal/model"
)

// Indicator windows.
const (
	RSIPeriod = 14
	ATRPeriod = 14
	EMAFast   = 20
	EMASlow   = 50
)

// HistoryPeriod is the lookback fetched for every timeframe.
const HistoryPeriod = "7d"

// DefaultTimeframes is the fixed report order, longest interval first.
var DefaultTimeframes = []model.Timeframe{
	{Label: "1D", Interval: "1d", Period: HistoryPeriod},
	{Label: "4H", Interval: "4h", Period: HistoryPeriod},
	{Label: "1H", Interval: "1h", Period: HistoryPeriod},
	{Label: "30M", Interval: "30m", Period: HistoryPeriod},
	{Label: "15M", Interval: "15m", Period: HistoryPeriod},
}

// Analyzer runs the indicator engine over several timeframes of one symbol.
type Analyzer struct {
	Collector  *collector.Collector
	Timeframes []model.Timeframe
}

// NewAnalyzer creates an Analyzer over DefaultTimeframes.
func NewAnalyzer(col *collector.Collector) *Analyzer {
	return &Analyzer{Collector: col, Timeframes: DefaultTimeframes}
}

// Run analyzes every timeframe in order. A timeframe whose fetch fails is
// reported with Err set; the others are unaffected.
func (a *Analyzer) Run(ctx context.Context) []model.TimeframeReport {
	reports := make([]model.TimeframeReport, 0, len(a.Timeframes))
	for _, tf := range a.Timeframes {
		reports = append(reports, a.analyzeTimeframe(ctx, tf))
	}
	return reports
}

func (a *Analyzer) analyzeTimeframe(ctx context.Context, tf model.Timeframe) model.TimeframeReport {
	op := logger.StartOperation(ctx, "analysis.timeframe", "timeframe", tf.Label)
	series, err := a.Collector.History(op.Context(), tf.Period, tf.Interval)
	if err != nil {
		op.EndWithError(err, "timeframe", tf.Label)
		return model.TimeframeReport{Timeframe: tf, Err: err}
	}
	op.End("bars", len(series.Bars))
	return model.TimeframeReport{Timeframe: tf, Indicators: Compute(series)}
}

func ptr(v float64) *float64 { return &v }

// Compute derives the indicator set at the latest bar. The series must not be
// empty; indicators whose window is longer than the series are left nil.
func Compute(series *model.PriceSeries) *model.IndicatorSet {
	closes := series.Closes()
	last := series.Last()
	set := &model.IndicatorSet{LastPrice: last.Close, LastVolume: last.Volume}

	volumes := make([]float64, len(series.Bars))
	for i, b := range series.Bars {
		volumes[i] = b.Volume
	}
	if avg, err := calculator.CalculateMean(volumes); err == nil {
		set.AvgVolume = avg
	}

	if v, err := calculator.LastEMA(closes, EMAFast); err == nil {
		set.EMA20 = ptr(v)
	}
	if v, err := calculator.LastEMA(closes, EMASlow); err == nil {
		set.EMA50 = ptr(v)
	}
	if v, err := calculator.CalculateRSI(closes, RSIPeriod); err == nil {
		set.RSI = ptr(v)
	}
	if m, err := calculator.CalculateMACD(closes); err == nil {
		set.MACD = ptr(m.LastLine())
		set.MACDSignal = ptr(m.LastSignal())
	}
	if v, err := calculator.LastATR(series.Bars, ATRPeriod); err == nil {
		set.ATR = ptr(v)
	}
	if v, err := calculator.CalculateMomentum(closes); err == nil {
		set.Momentum = ptr(v)
	}
	return set
}
