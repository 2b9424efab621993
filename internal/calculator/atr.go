package calculator

import (
	"errors"
	"fmt"
	"math"

	"TickerWatch/internal/model"
)

// TrueRange returns the true range of every bar. The first bar has no previous
// close, so its range is simply high - low.
func TrueRange(bars []model.OHLCV) []float64 {
	tr := make([]float64, len(bars))
	for i, b := range bars {
		r := b.High - b.Low
		if i > 0 {
			prevClose := bars[i-1].Close
			r = math.Max(r, math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
		}
		tr[i] = r
	}
	return tr
}

// CalculateATR returns the rolling simple average of the true range over `period`
// bars. Only complete windows are returned; the consumer usually takes the last one.
func CalculateATR(bars []model.OHLCV, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(bars) < period {
		return nil, fmt.Errorf("atr(%d) over %d bars: %w", period, len(bars), ErrInsufficientData)
	}
	tr := TrueRange(bars)
	atr := make([]float64, 0, len(tr)-period+1)
	for end := period; end <= len(tr); end++ {
		v, err := CalculateSMA(tr[:end], period)
		if err != nil {
			return nil, err
		}
		atr = append(atr, v)
	}
	return atr, nil
}

// LastATR returns only the latest ATR value.
func LastATR(bars []model.OHLCV, period int) (float64, error) {
	atr, err := CalculateATR(bars, period)
	if err != nil {
		return 0, err
	}
	return last(atr), nil
}
