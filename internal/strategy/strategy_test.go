package strategy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"TickerWatch/internal/calculator"
	"TickerWatch/internal/collector"
	"TickerWatch/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// rangeBars returns n daily bars whose true range is exactly spread.
func rangeBars(close, spread float64, n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	t0 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.OHLCV{
			Time: t0.AddDate(0, 0, i), Open: close, High: close + spread/2, Low: close - spread/2, Close: close,
		}
	}
	return bars
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name   string
		mode   model.StrategyMode
		entry  string
		atr    string
		wantTP string
		wantSL string
	}{
		{"swing", model.StrategySwing, "10.0", "1.0", "11.5", "9"},
		{"long", model.StrategyLong, "5.85", "1.0", "7.85", "4.35"},
		{"long fractional atr", model.StrategyLong, "3.25", "0.42", "4.09", "2.62"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Levels(tt.mode, dec(tt.entry), dec(tt.atr))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.TakeProfit.Equal(dec(tt.wantTP)) {
				t.Errorf("take-profit = %s, want %s", res.TakeProfit, tt.wantTP)
			}
			if !res.StopLoss.Equal(dec(tt.wantSL)) {
				t.Errorf("stop-loss = %s, want %s", res.StopLoss, tt.wantSL)
			}
		})
	}

	if _, err := Levels("scalp", dec("1"), dec("1")); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestParseEntry(t *testing.T) {
	if d, err := ParseEntry(" 3.25 "); err != nil || !d.Equal(dec("3.25")) {
		t.Errorf("expected 3.25, got %s, %v", d, err)
	}
	for _, bad := range []string{"", "abc", "0", "-2", "NaN", "1,5"} {
		if _, err := ParseEntry(bad); !errors.Is(err, ErrInvalidEntry) {
			t.Errorf("%q: expected ErrInvalidEntry, got %v", bad, err)
		}
	}
}

func TestCompute(t *testing.T) {
	series := &model.PriceSeries{Bars: rangeBars(10, 1, 21), Interval: "1d"}

	res, err := Compute(model.StrategySwing, series, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Entry.Equal(dec("10")) || !res.TakeProfit.Equal(dec("11.5")) || !res.StopLoss.Equal(dec("9")) {
		t.Errorf("unexpected swing result %+v", res)
	}

	res, err = Compute(model.StrategyLong, series, "5.85")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.TakeProfit.Equal(dec("7.85")) || !res.StopLoss.Equal(dec("4.35")) {
		t.Errorf("unexpected long result %+v", res)
	}

	if _, err := Compute(model.StrategyLong, series, ""); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry, got %v", err)
	}
	if _, err := Compute(model.StrategyLong, nil, "abc"); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("invalid entry must win over missing data, got %v", err)
	}

	short := &model.PriceSeries{Bars: rangeBars(10, 1, 5)}
	if _, err := Compute(model.StrategySwing, short, ""); !errors.Is(err, calculator.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	if _, err := Compute(model.StrategySwing, &model.PriceSeries{}, ""); !errors.Is(err, collector.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestCalculator_Run(t *testing.T) {
	mock := &collector.MockFetcher{Bars: map[string][]model.OHLCV{"1d": rangeBars(4, 0.5, 22)}}
	calc := NewCalculator(collector.NewCollector(mock, "BBAI"))

	res, err := calc.Run(context.Background(), model.StrategyLong, "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.TakeProfit.Equal(dec("5")) || !res.StopLoss.Equal(dec("3.25")) {
		t.Errorf("unexpected result %+v", res)
	}
	if len(mock.Calls) != 1 || mock.Calls[0] != "1mo/1d" {
		t.Errorf("expected one 1mo/1d fetch, got %v", mock.Calls)
	}

	if _, err := calc.Run(context.Background(), model.StrategyLong, "x"); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry, got %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("invalid entry must not fetch data, got %v", mock.Calls)
	}
}
