package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WeekSummary extends a day-shaped summary to the calendar week containing
// Date. Date is the start of the week and EndDate its last day. Weeks start
// on Sunday.
type WeekSummary struct {
	DaySummary
	EndDate time.Time `json:"endDate"`
}

// RollupWeekly folds the daily buckets of one target month into calendar
// weeks, sorted ascending by week start. Only days inside the target month
// contribute, so a week cut by the month boundary carries partial totals.
// Day keys are folded in sorted order to keep the concatenated trade lists
// deterministic.
func RollupWeekly(days map[string]DaySummary, year int, month time.Month) []WeekSummary {
	prefix := fmt.Sprintf("%04d-%02d", year, month)

	keys := make([]string, 0, len(days))
	for key := range days {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	weeks := make(map[string]int) // week-start key -> index into out
	var out []WeekSummary

	for _, key := range keys {
		day := days[key]
		start := startOfWeek(day.Date)
		wk := start.Format(dayKeyLayout)

		idx, exists := weeks[wk]
		if !exists {
			idx = len(out)
			weeks[wk] = idx
			out = append(out, WeekSummary{
				DaySummary: DaySummary{Date: start},
				EndDate:    start.AddDate(0, 0, 6),
			})
		}

		week := &out[idx]
		week.NetPL += day.NetPL
		week.TradeCount += day.TradeCount
		week.WinCount += day.WinCount
		if day.MaxMargin > week.MaxMargin {
			week.MaxMargin = day.MaxMargin
		}
		week.Trades = append(week.Trades, day.Trades...)
	}

	// Rates come from the summed counts, never from averaging daily rates.
	for i := range out {
		out[i].WinRate = winRate(out[i].WinCount, out[i].TradeCount)
	}

	return out
}

// startOfWeek returns midnight of the Sunday on or before d.
func startOfWeek(d time.Time) time.Time {
	return startOfDay(d).AddDate(0, 0, -int(d.Weekday()))
}
