package models

import (
	"time"

	"gorm.io/gorm"

	"trade-journal-go/internal/journal"
)

// Trade represents a closed position recorded in the journal database.
type Trade struct {
	gorm.Model
	ExternalID string    `gorm:"uniqueIndex" json:"external_id"`
	DateOpened time.Time `json:"date_opened"`
	Premium    float64   `json:"premium"`
	MarginReq  float64   `json:"margin_req"`
	PL         float64   `json:"pl"`
	Strategy   string    `json:"strategy"`
	Legs       string    `json:"legs"`
}

// Record converts the persisted row into the aggregation core's input contract.
func (t Trade) Record() journal.TradeRecord {
	return journal.TradeRecord{
		DateOpened: t.DateOpened,
		Premium:    t.Premium,
		MarginReq:  t.MarginReq,
		PL:         t.PL,
		Strategy:   t.Strategy,
		Legs:       t.Legs,
	}
}

// Records converts a slice of rows for the aggregators.
func Records(trades []Trade) []journal.TradeRecord {
	records := make([]journal.TradeRecord, 0, len(trades))
	for _, t := range trades {
		records = append(records, t.Record())
	}
	return records
}
