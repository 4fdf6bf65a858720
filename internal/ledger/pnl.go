package ledger

import (
	"github.com/Bni3259/trading-journal/internal/errors"
	"github.com/Bni3259/trading-journal/internal/models"
)

// PnL is the mark-to-market result for a single position.
type PnL struct {
	USD float64
	Pct float64
}

// Profitable reports whether the position renders with profit styling.
// Break-even counts as profit.
func (p PnL) Profitable() bool {
	return p.USD >= 0
}

// Unrealized computes mark-to-market P&L for a record against the latest
// price. Pure function, no side effects. Records created through OpenPosition
// always carry a positive entry price; a zero entry price is rejected here
// rather than dividing by zero.
func Unrealized(rec models.TradeRecord, currentPrice float64) (PnL, error) {
	if rec.EntryPrice == 0 {
		return PnL{}, errors.NewValidationError("entry_price", rec.EntryPrice, "cannot compute percentage return")
	}
	return PnL{
		USD: (currentPrice - rec.EntryPrice) * rec.Quantity,
		Pct: (currentPrice/rec.EntryPrice - 1) * 100,
	}, nil
}
