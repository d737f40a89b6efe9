package journal

import "time"

// DaySummary accumulates the trades of one calendar day.
type DaySummary struct {
	Date       time.Time   `json:"date"`
	NetPL      float64     `json:"netPL"`
	TradeCount int         `json:"tradeCount"`
	WinCount   int         `json:"winCount"`
	WinRate    int         `json:"winRate"`
	MaxMargin  float64     `json:"maxMargin"`
	Trades     []TradeView `json:"trades"`
}

// AggregateDaily buckets trades by local calendar day, keyed "2006-01-02".
// A trade whose date cannot be normalized is dropped without touching any
// bucket; the rest of the aggregation proceeds. Each call builds and returns
// a fresh map owned by the caller.
func AggregateDaily(trades []TradeRecord) map[string]DaySummary {
	days := make(map[string]DaySummary)

	for _, t := range trades {
		opened, ok := t.openedDate()
		if !ok {
			continue
		}

		key := opened.Format(dayKeyLayout)
		day, exists := days[key]
		if !exists {
			day = DaySummary{Date: startOfDay(opened)}
		}

		day.NetPL += t.PL
		day.TradeCount++
		if t.PL > 0 {
			day.WinCount++
		}
		if t.MarginReq > day.MaxMargin {
			day.MaxMargin = t.MarginReq
		}
		day.Trades = append(day.Trades, TradeView{
			Date:      opened,
			Premium:   t.Premium,
			MarginReq: t.MarginReq,
			PL:        t.PL,
			Strategy:  t.Strategy,
			Legs:      t.Legs,
		})

		days[key] = day
	}

	for key, day := range days {
		day.WinRate = winRate(day.WinCount, day.TradeCount)
		days[key] = day
	}

	return days
}
