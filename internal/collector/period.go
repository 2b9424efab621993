package collector

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// intervalSpec maps a requested bar interval to the interval the data source
// serves natively and how many native bars make one requested bar.
type intervalSpec struct {
	native string
	bucket time.Duration // zero when no aggregation is needed
}

// ValidIntervals defines the allowed bar intervals.
var ValidIntervals = map[string]intervalSpec{
	"15m": {native: "15m"},
	"30m": {native: "30m"},
	"1h":  {native: "1h"},
	"4h":  {native: "1h", bucket: 4 * time.Hour},
	"1d":  {native: "1d"},
	"1wk": {native: "1wk"},
}

// ParsePeriod turns a lookback window ("7d", "1mo", "1y") into its start time relative to now.
func ParsePeriod(period string, now time.Time) (time.Time, error) {
	unitAt := strings.IndexFunc(period, func(r rune) bool { return r < '0' || r > '9' })
	if unitAt <= 0 {
		return time.Time{}, fmt.Errorf("invalid period %q", period)
	}
	n, err := strconv.Atoi(period[:unitAt])
	if err != nil || n <= 0 {
		return time.Time{}, fmt.Errorf("invalid period %q", period)
	}
	switch period[unitAt:] {
	case "d":
		return now.AddDate(0, 0, -n), nil
	case "wk":
		return now.AddDate(0, 0, -7*n), nil
	case "mo":
		return now.AddDate(0, -n, 0), nil
	case "y":
		return now.AddDate(-n, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("invalid period unit in %q", period)
	}
}
