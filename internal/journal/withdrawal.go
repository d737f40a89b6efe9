package journal

import (
	"fmt"
	"sort"
)

// MonthlyPL is one period of the withdrawal simulator's input series. Month
// must be a period label that sorts lexicographically in calendar order,
// e.g. "2024-03".
type MonthlyPL struct {
	Month string  `json:"month"`
	PL    float64 `json:"pl"`
}

// WithdrawalConfig controls the simulated withdrawal policy.
type WithdrawalConfig struct {
	StartingBalance          float64
	WithdrawalPct            float64 // fraction of a month's P/L, 0..1
	WithdrawOnlyIfProfitable bool
}

// DefaultWithdrawalConfig returns the standard policy: 100k starting
// balance, 30% withdrawal, gated on profitable months.
func DefaultWithdrawalConfig() WithdrawalConfig {
	return WithdrawalConfig{
		StartingBalance:          100000,
		WithdrawalPct:            0.3,
		WithdrawOnlyIfProfitable: true,
	}
}

// WithdrawalRow is one period of the simulated ledger. EndingBalance is a
// running value and depends on every prior row.
type WithdrawalRow struct {
	Month         string  `json:"month"`
	MonthPL       float64 `json:"monthPL"`
	Withdrawal    float64 `json:"withdrawal"`
	EndingBalance float64 `json:"endingBalance"`
}

// WithdrawalResult is the full ledger. FinalBalance equals the last row's
// ending balance, or the starting balance when the series is empty.
type WithdrawalResult struct {
	Rows         []WithdrawalRow `json:"rows"`
	FinalBalance float64         `json:"finalBalance"`
}

// SimulateWithdrawals folds a monthly P/L series into a running-balance
// ledger. The input is sorted ascending by period label before folding;
// the ledger is only meaningful in chronological order.
//
// Losing months are added to the balance in full. With the profitability
// gate disabled, a losing month's withdrawal is itself negative and raises
// the balance relative to not withdrawing; that is the formula, not a
// special case.
func SimulateWithdrawals(series []MonthlyPL, cfg WithdrawalConfig) WithdrawalResult {
	sorted := make([]MonthlyPL, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })

	balance := cfg.StartingBalance
	rows := make([]WithdrawalRow, 0, len(sorted))

	for _, p := range sorted {
		withdrawal := 0.0
		if !cfg.WithdrawOnlyIfProfitable || p.PL > 0 {
			withdrawal = p.PL * cfg.WithdrawalPct
		}
		balance += p.PL - withdrawal
		rows = append(rows, WithdrawalRow{
			Month:         p.Month,
			MonthPL:       p.PL,
			Withdrawal:    withdrawal,
			EndingBalance: balance,
		})
	}

	return WithdrawalResult{Rows: rows, FinalBalance: balance}
}

// MonthlyPLSeries converts a monthly rollup into the sorted "YYYY-MM"
// labelled series the simulator consumes.
func MonthlyPLSeries(months map[int]MonthStats, year int) []MonthlyPL {
	series := make([]MonthlyPL, 0, len(months))
	for idx, m := range months {
		series = append(series, MonthlyPL{
			Month: fmt.Sprintf("%04d-%02d", year, idx+1),
			PL:    m.NetPL,
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}
