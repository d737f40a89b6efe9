package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReducePeriod(t *testing.T) {
	trades := []TradeRecord{
		{DateRaw: "2024-01-05", PL: 100},
		{DateRaw: "2024-01-05", PL: -20},
		{DateRaw: "2024-01-12", PL: -10},
		{DateRaw: "2024-02-03", PL: 500},
	}
	days := AggregateDaily(trades)
	months := RollupMonthly(trades, 2024)

	t.Run("MonthView", func(t *testing.T) {
		ref := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

		stats := ReducePeriod(ViewMonth, ref, days, months)

		assert.Equal(t, 70.0, stats.NetPL)
		assert.Equal(t, 3, stats.TradeCount)
		assert.Equal(t, 33, stats.WinRate) // 1 win of 3, from raw counts
	})

	t.Run("YearView", func(t *testing.T) {
		ref := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

		stats := ReducePeriod(ViewYear, ref, days, months)

		assert.Equal(t, 570.0, stats.NetPL)
		assert.Equal(t, 4, stats.TradeCount)
		assert.Equal(t, 50, stats.WinRate) // 2 wins of 4
	})

	t.Run("RateFromCountsNotAveragedRates", func(t *testing.T) {
		// Day rates are 50 and 0; averaging them would give 25. The summed
		// counts give round(1/3 * 100) = 33.
		uneven := []TradeRecord{
			{DateRaw: "2024-05-01", PL: 10},
			{DateRaw: "2024-05-01", PL: -10},
			{DateRaw: "2024-05-02", PL: -10},
		}
		unevenDays := AggregateDaily(uneven)
		ref := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

		stats := ReducePeriod(ViewMonth, ref, unevenDays, nil)

		assert.Equal(t, 33, stats.WinRate)
	})

	t.Run("EmptyReferenceMonth", func(t *testing.T) {
		ref := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)

		stats := ReducePeriod(ViewMonth, ref, days, months)

		assert.Equal(t, 0.0, stats.NetPL)
		assert.Equal(t, 0, stats.TradeCount)
		assert.Equal(t, 0, stats.WinRate)
	})

	t.Run("EmptyMaps", func(t *testing.T) {
		ref := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

		assert.Equal(t, PeriodStats{}, ReducePeriod(ViewMonth, ref, nil, nil))
		assert.Equal(t, PeriodStats{}, ReducePeriod(ViewYear, ref, nil, nil))
	})
}

func TestWinRate(t *testing.T) {
	testCases := []struct {
		name     string
		wins     int
		total    int
		expected int
	}{
		{name: "ZeroTotal", wins: 0, total: 0, expected: 0},
		{name: "AllWins", wins: 5, total: 5, expected: 100},
		{name: "NoWins", wins: 0, total: 4, expected: 0},
		{name: "RoundsUp", wins: 2, total: 3, expected: 67},
		{name: "RoundsDown", wins: 1, total: 3, expected: 33},
		{name: "Half", wins: 1, total: 2, expected: 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rate := winRate(tc.wins, tc.total)
			assert.Equal(t, tc.expected, rate)
			assert.GreaterOrEqual(t, rate, 0)
			assert.LessOrEqual(t, rate, 100)
		})
	}
}
