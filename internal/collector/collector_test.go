package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TickerWatch/internal/model"
)

func TestAggregateBars_FourHourBuckets(t *testing.T) {
	base := time.Date(2024, 5, 6, 13, 30, 0, 0, time.UTC)
	var hourly []model.OHLCV
	for i := 0; i < 7; i++ {
		p := float64(10 + i)
		hourly = append(hourly, model.OHLCV{
			Time: base.Add(time.Duration(i) * time.Hour), Open: p, High: p + 1, Low: p - 1, Close: p + 0.5, Volume: 100,
		})
	}
	// 13:30,14:30,15:30 → 12:00 bucket; 16:30..19:30 → 16:00 bucket
	got := aggregateBars(hourly, 4*time.Hour)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got))
	}
	first := got[0]
	if !first.Time.Equal(time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected bucket start %v", first.Time)
	}
	if first.Open != 10 || first.High != 13 || first.Low != 9 || first.Close != 12.5 || first.Volume != 300 {
		t.Errorf("unexpected first bucket %+v", first)
	}
	if got[1].Open != 13 || got[1].Close != 16.5 || got[1].Volume != 400 {
		t.Errorf("unexpected second bucket %+v", got[1])
	}
	if aggregateBars(nil, time.Hour) != nil {
		t.Error("expected nil for empty input")
	}
}

func TestParsePeriod(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"7d":  now.AddDate(0, 0, -7),
		"1mo": now.AddDate(0, -1, 0),
		"2wk": now.AddDate(0, 0, -14),
		"1y":  now.AddDate(-1, 0, 0),
	}
	for in, want := range cases {
		got, err := ParsePeriod(in, now)
		if err != nil {
			t.Errorf("%s: unexpected error %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("%s: got %v, want %v", in, got, want)
		}
	}
	for _, bad := range []string{"", "d", "7", "7x", "0d"} {
		if _, err := ParsePeriod(bad, now); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

const chartJSON = `{"chart":{"result":[{"timestamp":[1717400000,1717403600,1717407200],
"indicators":{"quote":[{"open":[1.0,null,1.2],"high":[1.1,null,1.3],"low":[0.9,null,1.1],
"close":[1.05,null,1.25],"volume":[1000,null,1500]}]}}],"error":null}}`

func TestYahooFetcher_FetchHistory(t *testing.T) {
	var gotPath, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInterval = r.URL.Query().Get("interval")
		w.Write([]byte(chartJSON))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	bars, err := f.FetchHistory(context.Background(), "BBAI", "7d", "1h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v8/finance/chart/BBAI" || gotInterval != "1h" {
		t.Errorf("unexpected request %s interval=%s", gotPath, gotInterval)
	}
	if len(bars) != 2 {
		t.Fatalf("expected null bar to be skipped, got %d bars", len(bars))
	}
	if bars[1].Close != 1.25 || bars[1].Volume != 1500 {
		t.Errorf("unexpected last bar %+v", bars[1])
	}
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchHistory(context.Background(), "NOPE", "7d", "1d")
	if err == nil || !strings.Contains(err.Error(), "delisted") {
		t.Errorf("expected api error, got %v", err)
	}
}

func TestCollector_History(t *testing.T) {
	hourly := GenerateMockBars(5, 16, time.Hour)
	mock := &MockFetcher{
		Bars: map[string][]model.OHLCV{"1h": hourly, "15m": {}},
		Errs: map[string]error{"30m": errors.New("boom")},
	}
	c := NewCollector(mock, "BBAI")
	ctx := context.Background()

	s, err := c.History(ctx, "7d", "4h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Bars) != 4 || s.Interval != "4h" || s.Symbol != "BBAI" {
		t.Errorf("expected 4 aggregated bars, got %d (%s %s)", len(s.Bars), s.Symbol, s.Interval)
	}
	if mock.Calls[0] != "7d/1h" {
		t.Errorf("4h should be fetched as 1h, got %s", mock.Calls[0])
	}

	if _, err := c.History(ctx, "7d", "15m"); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData for empty bars, got %v", err)
	}
	if _, err := c.History(ctx, "7d", "30m"); err == nil || errors.Is(err, ErrNoData) {
		t.Errorf("expected fetch error, got %v", err)
	}
	if _, err := c.History(ctx, "7d", "3m"); err == nil {
		t.Error("expected error for unsupported interval")
	}
}
