// Package models defines the journal's trade record types.
package models

import (
	"strings"
	"time"
)

// Status represents the lifecycle state of a trade record.
type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

// TradeRecord is a single position in the journal. Records are created Open,
// transition to Closed exactly once, and are never deleted.
type TradeRecord struct {
	ID          int64
	Ticker      string
	OpenedAt    time.Time
	Quantity    float64
	EntryPrice  float64
	Status      Status
	ClosedAt    time.Time
	ExitPrice   float64
	Conclusions string
	ProfitUSD   float64
}

// IsOpen reports whether the position has not been closed yet.
func (t *TradeRecord) IsOpen() bool {
	return t.Status == StatusOpen
}

// NormalizeTicker trims whitespace and upper-cases a symbol the way the entry
// form does.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
