package collector

import (
	"time"

	"TickerWatch/internal/model"
)

// aggregateBars merges consecutive bars that fall into the same bucket of the
// given width. Buckets are aligned on UTC multiples of the width.
func aggregateBars(bars []model.OHLCV, width time.Duration) []model.OHLCV {
	if len(bars) == 0 {
		return nil
	}
	var out []model.OHLCV
	var cur model.OHLCV
	var curKey time.Time
	started := false

	for _, b := range bars {
		key := b.Time.UTC().Truncate(width)
		if !started || !key.Equal(curKey) {
			if started {
				out = append(out, cur)
			}
			cur = model.OHLCV{Time: key, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
			curKey = key
			started = true
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	return append(out, cur)
}
