// Package ledger owns the collection of trade records and computes derived
// views over them. All mutation goes through the Ledger; validation always
// precedes mutation, and a failed save rolls the in-memory change back.
package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bni3259/trading-journal/internal/errors"
	"github.com/Bni3259/trading-journal/internal/models"
	"github.com/Bni3259/trading-journal/internal/store"
)

// Ledger is the authoritative in-process collection of trade records.
type Ledger struct {
	mu      sync.RWMutex
	store   store.Store
	records []models.TradeRecord
	logger  zerolog.Logger
}

// New creates a Ledger backed by the given store, loading any existing
// records from it.
func New(st store.Store, logger zerolog.Logger) (*Ledger, error) {
	records, err := st.Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading journal")
	}
	return &Ledger{
		store:   st,
		records: records,
		logger:  logger,
	}, nil
}

// OpenPosition validates the inputs, appends a new Open record with the next
// id, and persists the journal. On any validation failure the ledger is left
// unchanged.
func (l *Ledger) OpenPosition(ticker string, quantity, entryPrice float64, openedAt time.Time) (*models.TradeRecord, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, errors.NewValidationError("ticker", ticker, "must not be empty")
	}
	if quantity <= 0 {
		return nil, errors.NewValidationError("quantity", quantity, "must be positive")
	}
	if entryPrice <= 0 {
		return nil, errors.NewValidationError("entry_price", entryPrice, "must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec := models.TradeRecord{
		ID:         l.nextID(),
		Ticker:     ticker,
		OpenedAt:   openedAt,
		Quantity:   quantity,
		EntryPrice: entryPrice,
		Status:     models.StatusOpen,
	}
	l.records = append(l.records, rec)
	if err := l.persist(); err != nil {
		l.records = l.records[:len(l.records)-1]
		return nil, err
	}

	l.logger.Info().
		Int64("id", rec.ID).
		Str("ticker", rec.Ticker).
		Float64("quantity", rec.Quantity).
		Float64("entry_price", rec.EntryPrice).
		Msg("Position opened")
	return &rec, nil
}

// ClosePosition transitions an Open record to Closed, setting the exit fields
// and freezing the realized profit. Closing an already-Closed record fails
// with ErrAlreadyClosed and leaves the record unchanged.
func (l *Ledger) ClosePosition(id int64, exitPrice float64, closedAt time.Time, conclusions string) (*models.TradeRecord, error) {
	if exitPrice <= 0 {
		return nil, errors.NewValidationError("exit_price", exitPrice, "must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.records {
		if l.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.Wrapf(errors.ErrTradeNotFound, "trade %d", id)
	}
	if l.records[idx].Status == models.StatusClosed {
		return nil, errors.Wrapf(errors.ErrAlreadyClosed, "trade %d", id)
	}

	prev := l.records[idx]
	rec := &l.records[idx]
	rec.Status = models.StatusClosed
	rec.ClosedAt = closedAt
	rec.ExitPrice = exitPrice
	rec.Conclusions = conclusions
	rec.ProfitUSD = (exitPrice - rec.EntryPrice) * rec.Quantity

	if err := l.persist(); err != nil {
		l.records[idx] = prev
		return nil, err
	}

	out := l.records[idx]
	l.logger.Info().
		Int64("id", out.ID).
		Str("ticker", out.Ticker).
		Float64("exit_price", out.ExitPrice).
		Float64("profit_usd", out.ProfitUSD).
		Msg("Position closed")
	return &out, nil
}

// ListOpen returns all Open records in ledger insertion order.
func (l *Ledger) ListOpen() []models.TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	open := []models.TradeRecord{}
	for i := range l.records {
		if l.records[i].Status == models.StatusOpen {
			open = append(open, l.records[i])
		}
	}
	return open
}

// ListClosed returns Closed records in chronological order by entry date.
// A non-nil since filters to records entered at or after it; used for the
// weekly and monthly rollups.
func (l *Ledger) ListClosed(since *time.Time) []models.TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	closed := []models.TradeRecord{}
	for i := range l.records {
		rec := l.records[i]
		if rec.Status != models.StatusClosed {
			continue
		}
		if since != nil && rec.OpenedAt.Before(*since) {
			continue
		}
		closed = append(closed, rec)
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].OpenedAt.Before(closed[j].OpenedAt)
	})
	return closed
}

// All returns a copy of every record in insertion order.
func (l *Ledger) All() []models.TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.TradeRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records in the ledger.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// nextID returns max existing id + 1. Ids are never reused.
func (l *Ledger) nextID() int64 {
	var max int64
	for i := range l.records {
		if l.records[i].ID > max {
			max = l.records[i].ID
		}
	}
	return max + 1
}

func (l *Ledger) persist() error {
	if err := l.store.Save(l.records); err != nil {
		l.logger.Error().Err(err).Msg("Failed to save journal")
		if _, ok := err.(*errors.PersistenceError); ok {
			return err
		}
		return errors.NewPersistenceError("save", err)
	}
	return nil
}
