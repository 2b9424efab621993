package collector

import (
	"context"
	"time"

	"TickerWatch/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Bars and Errs are keyed by native interval; intervals missing from both get
// generated bars around Price.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.OHLCV
	Errs  map[string]error
	Calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, _ string, period, interval string) ([]model.OHLCV, error) {
	m.Calls = append(m.Calls, period+"/"+interval)
	if err, ok := m.Errs[interval]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[interval]; ok {
		return bars, nil
	}
	return GenerateMockBars(m.Price, 60, time.Hour), nil
}

// GenerateMockBars builds a gently rising series of count bars spaced step apart.
func GenerateMockBars(basePrice float64, count int, step time.Duration) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   start.Add(time.Duration(i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
