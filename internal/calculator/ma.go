package calculator

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when a series is shorter than the indicator window.
var ErrInsufficientData = errors.New("insufficient data")

// CalculateSMA computes the simple moving average of the last `period` values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, fmt.Errorf("sma(%d) over %d values: %w", period, len(values), ErrInsufficientData)
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// CalculateMean returns the arithmetic mean of all values.
func CalculateMean(values []float64) (float64, error) {
	return CalculateSMA(values, len(values))
}

// CalculateEMA computes the exponential moving average with alpha = 2/(span+1).
// The recursion is seeded with the first value, so the output has the same
// length as the input and no warm-up gap.
func CalculateEMA(values []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("ema(%d) over empty series: %w", span, ErrInsufficientData)
	}
	alpha := 2.0 / float64(span+1)
	ema := make([]float64, len(values))
	ema[0] = values[0]
	for i := 1; i < len(values); i++ {
		ema[i] = alpha*values[i] + (1-alpha)*ema[i-1]
	}
	return ema, nil
}

// MACD holds the MACD line, its signal line and the histogram, aligned with the input closes.
type MACD struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// LastLine returns the latest MACD line value.
func (m *MACD) LastLine() float64 { return m.Line[len(m.Line)-1] }

// LastSignal returns the latest signal line value.
func (m *MACD) LastSignal() float64 { return m.Signal[len(m.Signal)-1] }

// CalculateMACD computes EMA(12) - EMA(26), its EMA(9) signal line and the histogram.
func CalculateMACD(closes []float64) (*MACD, error) {
	fast, err := CalculateEMA(closes, 12)
	if err != nil {
		return nil, fmt.Errorf("macd fast ema: %w", err)
	}
	slow, err := CalculateEMA(closes, 26)
	if err != nil {
		return nil, fmt.Errorf("macd slow ema: %w", err)
	}
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	signal, err := CalculateEMA(line, 9)
	if err != nil {
		return nil, fmt.Errorf("macd signal ema: %w", err)
	}
	hist := make([]float64, len(line))
	for i := range line {
		hist[i] = line[i] - signal[i]
	}
	return &MACD{Line: line, Signal: signal, Histogram: hist}, nil
}

// CalculateMomentum returns the last close minus the previous close.
func CalculateMomentum(closes []float64) (float64, error) {
	if len(closes) < 2 {
		return 0, fmt.Errorf("momentum over %d values: %w", len(closes), ErrInsufficientData)
	}
	return closes[len(closes)-1] - closes[len(closes)-2], nil
}

func last(values []float64) float64 {
	return values[len(values)-1]
}

// LastEMA is a convenience wrapper returning only the latest EMA value.
func LastEMA(values []float64, span int) (float64, error) {
	ema, err := CalculateEMA(values, span)
	if err != nil {
		return 0, err
	}
	return last(ema), nil
}
