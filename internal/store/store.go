// Package store provides data persistence for journal records.
package store

import (
	"github.com/Bni3259/trading-journal/internal/models"
)

// Store loads and saves the full set of journal records. Save replaces the
// whole backing store; there is no incremental update. Load returns an empty
// slice, not an error, when the backing store is absent or empty.
type Store interface {
	Load() ([]models.TradeRecord, error)
	Save(records []models.TradeRecord) error
	Close() error
}

// Column layouts shared by the backends. Entry date and time are stored as
// separate columns for compatibility with the spreadsheet layout.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
