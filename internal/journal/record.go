package journal

import (
	"strings"
	"time"
)

// dayKeyLayout is the canonical bucket key format. Two trades opened on the
// same local calendar day always collide into one bucket regardless of
// time-of-day.
const dayKeyLayout = "2006-01-02"

// dateLayouts are tried in order when a record carries only a raw date string.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// TradeRecord is the unit of input to the aggregators. Records are supplied
// by an external trade store and never mutated by this package.
//
// DateOpened is authoritative when non-zero; otherwise DateRaw is parsed.
// Absent numeric fields are simply their zero value.
type TradeRecord struct {
	DateOpened time.Time
	DateRaw    string
	Premium    float64
	MarginReq  float64
	PL         float64
	Strategy   string
	Legs       string
}

// ParseDate normalizes a raw date string into a concrete date. The second
// return is false when no known layout matches.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// openedDate resolves the record's opened date. A false return means the
// record carries no usable date and must be dropped from aggregation.
func (t TradeRecord) openedDate() (time.Time, bool) {
	if !t.DateOpened.IsZero() {
		return t.DateOpened, true
	}
	return ParseDate(t.DateRaw)
}

// TradeView is the normalized per-trade record stored inside a bucket's
// trade list. Strategy and Legs keep their input values verbatim, empty
// strings included; display defaulting belongs to the presentation layer.
type TradeView struct {
	Date      time.Time `json:"date"`
	Premium   float64   `json:"premium"`
	MarginReq float64   `json:"marginReq"`
	PL        float64   `json:"pl"`
	Strategy  string    `json:"strategy"`
	Legs      string    `json:"legs"`
}

// DisplayStrategy returns the label a presentation layer should show:
// Strategy, falling back to Legs, falling back to "Custom".
func (v TradeView) DisplayStrategy() string {
	if v.Strategy != "" {
		return v.Strategy
	}
	if v.Legs != "" {
		return v.Legs
	}
	return "Custom"
}

// startOfDay truncates a date to midnight in its own location.
func startOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
