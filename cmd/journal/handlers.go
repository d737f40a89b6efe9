package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log *zap.Logger
	db  *gorm.DB
	cfg *config.Config
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, db *gorm.DB, cfg *config.Config) *APIHandler {
	return &APIHandler{log: log, db: db, cfg: cfg}
}

// tradeJSON decorates a core trade view with the display label shown in the
// calendar detail. The stored strategy stays faithful to the input; the
// "Custom" default is applied only here, at the presentation boundary.
type tradeJSON struct {
	journal.TradeView
	DisplayStrategy string `json:"displayStrategy"`
}

func decorateTrades(views []journal.TradeView) []tradeJSON {
	out := make([]tradeJSON, 0, len(views))
	for _, v := range views {
		out = append(out, tradeJSON{TradeView: v, DisplayStrategy: v.DisplayStrategy()})
	}
	return out
}

type daySummaryJSON struct {
	journal.DaySummary
	Trades []tradeJSON `json:"trades"`
}

type weekSummaryJSON struct {
	journal.WeekSummary
	Trades []tradeJSON `json:"trades"`
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}

// loadRecords fetches every stored trade and converts it to the
// aggregation core's input contract.
func (h *APIHandler) loadRecords(w http.ResponseWriter) ([]journal.TradeRecord, bool) {
	var trades []models.Trade
	if err := h.db.Find(&trades).Error; err != nil {
		h.log.Error("Failed to get trades from database", zap.Error(err))
		http.Error(w, "Failed to get trades", http.StatusInternalServerError)
		return nil, false
	}
	return models.Records(trades), true
}

// monthParam parses ?month=YYYY-MM, defaulting to the current month.
func monthParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01", raw)
}

// yearParam parses ?year=YYYY, defaulting to the current year.
func yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().Year(), nil
	}
	return strconv.Atoi(raw)
}

// HealthHandler reports liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

// TradesHandler returns all recorded trades, most recently opened first.
func (h *APIHandler) TradesHandler(w http.ResponseWriter, r *http.Request) {
	var trades []models.Trade
	if err := h.db.Order("date_opened desc").Find(&trades).Error; err != nil {
		h.log.Error("Failed to get trades from database", zap.Error(err))
		http.Error(w, "Failed to get trades", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, trades)
}

// CalendarDailyHandler returns the day summaries of the requested month.
func (h *APIHandler) CalendarDailyHandler(w http.ResponseWriter, r *http.Request) {
	ref, err := monthParam(r)
	if err != nil {
		http.Error(w, "Invalid month, expected YYYY-MM", http.StatusBadRequest)
		return
	}
	records, ok := h.loadRecords(w)
	if !ok {
		return
	}

	prefix := ref.Format("2006-01")
	response := make(map[string]daySummaryJSON)
	for key, day := range journal.AggregateDaily(records) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		response[key] = daySummaryJSON{DaySummary: day, Trades: decorateTrades(day.Trades)}
	}
	h.writeJSON(w, response)
}

// CalendarWeeklyHandler returns the weekly rollup of the requested month.
func (h *APIHandler) CalendarWeeklyHandler(w http.ResponseWriter, r *http.Request) {
	ref, err := monthParam(r)
	if err != nil {
		http.Error(w, "Invalid month, expected YYYY-MM", http.StatusBadRequest)
		return
	}
	records, ok := h.loadRecords(w)
	if !ok {
		return
	}

	days := journal.AggregateDaily(records)
	weeks := journal.RollupWeekly(days, ref.Year(), ref.Month())

	response := make([]weekSummaryJSON, 0, len(weeks))
	for _, week := range weeks {
		response = append(response, weekSummaryJSON{WeekSummary: week, Trades: decorateTrades(week.Trades)})
	}
	h.writeJSON(w, response)
}

// CalendarMonthlyHandler returns the monthly rollup of the requested year.
func (h *APIHandler) CalendarMonthlyHandler(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}
	records, ok := h.loadRecords(w)
	if !ok {
		return
	}
	h.writeJSON(w, journal.RollupMonthly(records, year))
}

// StatsHandler returns the headline stats for the active view:
// ?view=month&month=YYYY-MM or ?view=year&year=YYYY.
func (h *APIHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	view := journal.View(r.URL.Query().Get("view"))
	if view == "" {
		view = journal.ViewMonth
	}

	var ref time.Time
	switch view {
	case journal.ViewYear:
		year, err := yearParam(r)
		if err != nil {
			http.Error(w, "Invalid year", http.StatusBadRequest)
			return
		}
		ref = time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	case journal.ViewMonth:
		var err error
		if ref, err = monthParam(r); err != nil {
			http.Error(w, "Invalid month, expected YYYY-MM", http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, "Invalid view, expected month or year", http.StatusBadRequest)
		return
	}

	records, ok := h.loadRecords(w)
	if !ok {
		return
	}

	days := journal.AggregateDaily(records)
	months := journal.RollupMonthly(records, ref.Year())
	h.writeJSON(w, journal.ReducePeriod(view, ref, days, months))
}

// WithdrawalsHandler simulates the withdrawal policy over the requested
// year's monthly P/L. The configured policy can be overridden per request
// with starting_balance, withdrawal_pct and only_if_profitable parameters.
func (h *APIHandler) WithdrawalsHandler(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}

	wcfg := journal.WithdrawalConfig{
		StartingBalance:          h.cfg.Withdrawal.StartingBalance,
		WithdrawalPct:            h.cfg.Withdrawal.WithdrawalPct,
		WithdrawOnlyIfProfitable: h.cfg.Withdrawal.OnlyIfProfitable,
	}
	q := r.URL.Query()
	if raw := q.Get("starting_balance"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			wcfg.StartingBalance = v
		}
	}
	if raw := q.Get("withdrawal_pct"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			wcfg.WithdrawalPct = v
		}
	}
	if raw := q.Get("only_if_profitable"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			wcfg.WithdrawOnlyIfProfitable = v
		}
	}

	records, ok := h.loadRecords(w)
	if !ok {
		return
	}

	series := journal.MonthlyPLSeries(journal.RollupMonthly(records, year), year)
	h.writeJSON(w, journal.SimulateWithdrawals(series, wcfg))
}
