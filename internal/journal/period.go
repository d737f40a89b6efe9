package journal

import (
	"math"
	"strings"
	"time"
)

// View selects which rollup feeds the headline stats.
type View string

const (
	ViewMonth View = "month"
	ViewYear  View = "year"
)

// PeriodStats is the single headline aggregate for the active view.
type PeriodStats struct {
	NetPL      float64 `json:"netPL"`
	TradeCount int     `json:"tradeCount"`
	WinRate    int     `json:"winRate"`
}

// ReducePeriod folds either the daily buckets of the reference month (month
// view) or the whole monthly map (year view) into one aggregate. The win
// rate is always derived from the summed raw counts, never from the buckets'
// precomputed rates, so rounding cannot compound across folds.
func ReducePeriod(view View, ref time.Time, days map[string]DaySummary, months map[int]MonthStats) PeriodStats {
	var stats PeriodStats
	wins := 0

	switch view {
	case ViewYear:
		for _, m := range months {
			stats.NetPL += m.NetPL
			stats.TradeCount += m.TradeCount
			wins += m.WinCount
		}
	default:
		prefix := ref.Format("2006-01")
		for key, day := range days {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			stats.NetPL += day.NetPL
			stats.TradeCount += day.TradeCount
			wins += day.WinCount
		}
	}

	stats.WinRate = winRate(wins, stats.TradeCount)
	return stats
}

// winRate converts win/total counts into a rounded integer percentage.
// A zero total yields 0 rather than a division error.
func winRate(wins, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(wins) / float64(total) * 100))
}
