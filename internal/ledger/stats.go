package ledger

import (
	"sort"
	"time"

	"github.com/Bni3259/trading-journal/internal/models"
)

// Stats summarizes realized performance over a set of trades.
type Stats struct {
	Trades    int
	Wins      int
	Losses    int
	NetProfit float64
	WinRate   float64 // percent; 0 over an empty set
}

// SummaryStats computes net profit and win rate over the given records.
// A trade counts as a win only when its profit is strictly positive; a
// break-even trade still gets profit styling in the presentation layer but
// does not inflate the win rate.
func SummaryStats(records []models.TradeRecord) Stats {
	stats := Stats{Trades: len(records)}
	for i := range records {
		stats.NetProfit += records[i].ProfitUSD
		if records[i].ProfitUSD > 0 {
			stats.Wins++
		} else {
			stats.Losses++
		}
	}
	if stats.Trades > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.Trades) * 100
	}
	return stats
}

// EquityPoint is one step of the equity curve.
type EquityPoint struct {
	Date   time.Time
	Equity float64
}

// EquityCurve sorts Closed records by exit date ascending and returns the
// running account value starting from initialBalance. Recomputed fresh on
// every call; ties on exit date break by id so the curve is deterministic.
func (l *Ledger) EquityCurve(initialBalance float64) []EquityPoint {
	closed := l.ListClosed(nil)
	sort.SliceStable(closed, func(i, j int) bool {
		if closed[i].ClosedAt.Equal(closed[j].ClosedAt) {
			return closed[i].ID < closed[j].ID
		}
		return closed[i].ClosedAt.Before(closed[j].ClosedAt)
	})

	curve := make([]EquityPoint, 0, len(closed))
	equity := initialBalance
	for i := range closed {
		equity += closed[i].ProfitUSD
		curve = append(curve, EquityPoint{
			Date:   closed[i].ClosedAt,
			Equity: equity,
		})
	}
	return curve
}
