package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bni3259/trading-journal/internal/errors"
	"github.com/Bni3259/trading-journal/internal/models"
)

func TestSummaryStats_Empty(t *testing.T) {
	stats := SummaryStats(nil)
	assert.Zero(t, stats.Trades)
	assert.Zero(t, stats.NetProfit)
	assert.Zero(t, stats.WinRate, "win rate over an empty set is defined as 0")
}

func TestSummaryStats(t *testing.T) {
	records := []models.TradeRecord{
		{ProfitUSD: 100},
		{ProfitUSD: -40},
		{ProfitUSD: 0}, // break-even: profit-styled but not a win
		{ProfitUSD: 60},
	}
	stats := SummaryStats(records)
	assert.Equal(t, 4, stats.Trades)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 2, stats.Losses)
	assert.InDelta(t, 120, stats.NetProfit, 1e-9)
	assert.InDelta(t, 50, stats.WinRate, 1e-9)
}

func TestUnrealized(t *testing.T) {
	rec := models.TradeRecord{Ticker: "AAPL", Quantity: 10, EntryPrice: 150}

	pnl, err := Unrealized(rec, 165)
	require.NoError(t, err)
	assert.InDelta(t, 150, pnl.USD, 1e-9)
	assert.InDelta(t, 10, pnl.Pct, 1e-9)

	down, err := Unrealized(rec, 140)
	require.NoError(t, err)
	assert.InDelta(t, -100, down.USD, 1e-9)
	assert.False(t, down.Profitable())

	// Break-even counts as profit for styling.
	flat, err := Unrealized(rec, 150)
	require.NoError(t, err)
	assert.Zero(t, flat.USD)
	assert.True(t, flat.Profitable())
}

func TestUnrealized_ZeroEntryPriceRejected(t *testing.T) {
	_, err := Unrealized(models.TradeRecord{Quantity: 10}, 165)
	var verr *errors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestEquityCurve(t *testing.T) {
	led, _ := newTestLedger(t)

	day := func(d int) time.Time { return time.Date(2026, 8, d, 10, 0, 0, 0, time.UTC) }

	a, err := led.OpenPosition("AAPL", 10, 150, day(1))
	require.NoError(t, err)
	b, err := led.OpenPosition("MSFT", 2, 400, day(2))
	require.NoError(t, err)

	// Close out of entry order: b first.
	_, err = led.ClosePosition(b.ID, 390, day(3), "")
	require.NoError(t, err)
	_, err = led.ClosePosition(a.ID, 160, day(5), "")
	require.NoError(t, err)

	curve := led.EquityCurve(10000)
	require.Len(t, curve, 2)

	// Sorted by exit date: MSFT loss first, then AAPL gain.
	assert.Equal(t, day(3), curve[0].Date)
	assert.InDelta(t, 10000-20, curve[0].Equity, 1e-9)
	assert.Equal(t, day(5), curve[1].Date)
	assert.InDelta(t, 10000-20+100, curve[1].Equity, 1e-9)
}

func TestEquityCurve_NoClosedTrades(t *testing.T) {
	led, _ := newTestLedger(t)
	assert.Empty(t, led.EquityCurve(5000))
}
