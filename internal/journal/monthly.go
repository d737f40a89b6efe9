package journal

// MonthStats accumulates one calendar month of trades within a single target
// year. Win rate and margin peaks are day/week-level concerns; the yearly
// view trades that detail for breadth.
type MonthStats struct {
	MonthIndex   int     `json:"monthIndex"` // 0 = January
	NetPL        float64 `json:"netPL"`
	TradeCount   int     `json:"tradeCount"`
	WinCount     int     `json:"winCount"`
	LossCount    int     `json:"lossCount"`
	TotalPremium float64 `json:"totalPremium"`
}

// RollupMonthly buckets trades by calendar month for the target year, keyed
// by month index 0-11. Trades outside the target year (or without a usable
// date) are excluded entirely. Break-even trades count toward neither wins
// nor losses.
func RollupMonthly(trades []TradeRecord, year int) map[int]MonthStats {
	months := make(map[int]MonthStats)

	for _, t := range trades {
		opened, ok := t.openedDate()
		if !ok || opened.Year() != year {
			continue
		}

		idx := int(opened.Month()) - 1
		m, exists := months[idx]
		if !exists {
			m = MonthStats{MonthIndex: idx}
		}

		m.NetPL += t.PL
		m.TradeCount++
		switch {
		case t.PL > 0:
			m.WinCount++
		case t.PL < 0:
			m.LossCount++
		}
		m.TotalPremium += t.Premium

		months[idx] = m
	}

	return months
}
