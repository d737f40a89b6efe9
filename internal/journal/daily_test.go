package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregateDaily(t *testing.T) {
	t.Run("TwoTradesSameDay", func(t *testing.T) {
		trades := []TradeRecord{
			{DateRaw: "2024-01-05T10:00:00Z", PL: 100, MarginReq: 500},
			{DateRaw: "2024-01-05T15:00:00Z", PL: -40, MarginReq: 300},
		}

		days := AggregateDaily(trades)

		assert.Len(t, days, 1)
		day, ok := days["2024-01-05"]
		assert.True(t, ok)
		assert.Equal(t, 60.0, day.NetPL)
		assert.Equal(t, 2, day.TradeCount)
		assert.Equal(t, 1, day.WinCount)
		assert.Equal(t, 50, day.WinRate)
		assert.Equal(t, 500.0, day.MaxMargin)
		assert.Len(t, day.Trades, 2)
	})

	t.Run("UnparseableDateIsDropped", func(t *testing.T) {
		trades := []TradeRecord{
			{DateRaw: "not a date", PL: 100},
			{DateRaw: "2024-01-05", PL: 50},
		}

		days := AggregateDaily(trades)

		assert.Len(t, days, 1)
		assert.Equal(t, 1, days["2024-01-05"].TradeCount)
		assert.Equal(t, 50.0, days["2024-01-05"].NetPL)
	})

	t.Run("ConcreteDatePreferredOverRaw", func(t *testing.T) {
		opened := time.Date(2024, time.March, 12, 9, 30, 0, 0, time.UTC)
		trades := []TradeRecord{
			{DateOpened: opened, DateRaw: "1999-01-01", PL: 10},
		}

		days := AggregateDaily(trades)

		assert.Len(t, days, 1)
		_, ok := days["2024-03-12"]
		assert.True(t, ok)
	})

	t.Run("ZeroPLIsNotAWin", func(t *testing.T) {
		trades := []TradeRecord{
			{DateRaw: "2024-01-05", PL: 0},
			{DateRaw: "2024-01-05", PL: -5},
			{DateRaw: "2024-01-05", PL: 5},
		}

		day := AggregateDaily(trades)["2024-01-05"]

		assert.Equal(t, 3, day.TradeCount)
		assert.Equal(t, 1, day.WinCount)
		assert.Equal(t, 33, day.WinRate) // round(1/3 * 100)
	})

	t.Run("TradeListPreservesInputOrderAndRawLabels", func(t *testing.T) {
		trades := []TradeRecord{
			{DateRaw: "2024-01-05", PL: 1, Strategy: "", Legs: "SPX 4700P"},
			{DateRaw: "2024-01-05", PL: 2, Strategy: "Iron Condor"},
		}

		day := AggregateDaily(trades)["2024-01-05"]

		assert.Len(t, day.Trades, 2)
		// Stored values stay faithful to the input, empty strings included.
		assert.Equal(t, "", day.Trades[0].Strategy)
		assert.Equal(t, "SPX 4700P", day.Trades[0].Legs)
		assert.Equal(t, "Iron Condor", day.Trades[1].Strategy)
		assert.Equal(t, 1.0, day.Trades[0].PL)
		assert.Equal(t, 2.0, day.Trades[1].PL)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		days := AggregateDaily(nil)
		assert.Empty(t, days)
	})

	t.Run("Idempotent", func(t *testing.T) {
		trades := []TradeRecord{
			{DateRaw: "2024-01-05T10:00:00Z", PL: 100, MarginReq: 500, Premium: 120},
			{DateRaw: "2024-01-06", PL: -40, MarginReq: 300},
			{DateRaw: "bogus", PL: 7},
		}

		first := AggregateDaily(trades)
		second := AggregateDaily(trades)

		assert.Equal(t, first, second)
	})
}

func TestDisplayStrategy(t *testing.T) {
	testCases := []struct {
		name     string
		view     TradeView
		expected string
	}{
		{name: "StrategySet", view: TradeView{Strategy: "Strangle", Legs: "legs"}, expected: "Strangle"},
		{name: "LegsFallback", view: TradeView{Legs: "SPX 4700P/4650P"}, expected: "SPX 4700P/4650P"},
		{name: "BothEmpty", view: TradeView{}, expected: "Custom"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.view.DisplayStrategy())
		})
	}
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{name: "RFC3339", raw: "2024-01-05T10:00:00Z", expected: "2024-01-05", ok: true},
		{name: "DateOnly", raw: "2024-01-05", expected: "2024-01-05", ok: true},
		{name: "DateTime", raw: "2024-01-05 15:04:05", expected: "2024-01-05", ok: true},
		{name: "USShort", raw: "01/05/2024", expected: "2024-01-05", ok: true},
		{name: "Whitespace", raw: "  2024-01-05  ", expected: "2024-01-05", ok: true},
		{name: "Empty", raw: "", ok: false},
		{name: "Garbage", raw: "yesterday", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := ParseDate(tc.raw)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, d.Format("2006-01-02"))
			}
		})
	}
}
