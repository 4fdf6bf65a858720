package ledger

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"
)

// Property: every successfully opened position gets an id strictly greater
// than all previously assigned ids, and the realized profit after a close is
// exactly (exit - entry) * quantity.
func TestProperty_OpenCloseInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	tickers := []string{"AAPL", "MSFT", "NVDA", "AMZN", "GOOG", "META", "TSLA"}
	quantityGen := gen.Float64Range(0.01, 10000)
	priceGen := gen.Float64Range(0.01, 5000)

	properties.Property("ids are strictly increasing across opens", prop.ForAll(
		func(tickerIdx int, quantity, price float64, count int) bool {
			st := &memStore{}
			led, err := New(st, zerolog.Nop())
			if err != nil {
				return false
			}

			var lastID int64
			for i := 0; i < count; i++ {
				rec, err := led.OpenPosition(tickers[(tickerIdx+i)%len(tickers)], quantity, price, time.Now())
				if err != nil {
					t.Logf("unexpected open failure: %v", err)
					return false
				}
				if rec.ID <= lastID {
					t.Logf("id %d not greater than previous %d", rec.ID, lastID)
					return false
				}
				lastID = rec.ID
			}
			return true
		},
		gen.IntRange(0, len(tickers)-1),
		quantityGen,
		priceGen,
		gen.IntRange(1, 20),
	))

	properties.Property("realized profit equals (exit-entry)*qty", prop.ForAll(
		func(tickerIdx int, quantity, entry, exit float64) bool {
			st := &memStore{}
			led, err := New(st, zerolog.Nop())
			if err != nil {
				return false
			}

			rec, err := led.OpenPosition(tickers[tickerIdx], quantity, entry, time.Now())
			if err != nil {
				return false
			}
			closed, err := led.ClosePosition(rec.ID, exit, time.Now(), "")
			if err != nil {
				return false
			}

			want := (exit - entry) * quantity
			return math.Abs(closed.ProfitUSD-want) <= 1e-9*math.Max(1, math.Abs(want))
		},
		gen.IntRange(0, len(tickers)-1),
		quantityGen,
		priceGen,
		priceGen,
	))

	properties.Property("rejected opens never change ledger size", prop.ForAll(
		func(quantity, price float64) bool {
			st := &memStore{}
			led, err := New(st, zerolog.Nop())
			if err != nil {
				return false
			}

			// At least one of the inputs is non-positive here.
			_, err = led.OpenPosition("AAPL", -quantity, price, time.Now())
			if err == nil {
				return false
			}
			return led.Len() == 0
		},
		gen.Float64Range(0, 1000),
		gen.Float64Range(0.01, 1000),
	))

	properties.TestingRun(t)
}

// Property: each step of the equity curve moves by exactly the profit of the
// corresponding closed trade, in exit-date order.
func TestProperty_EquityCurveConsistency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("equity deltas match chronological profits", prop.ForAll(
		func(count int, entry float64, balance float64) bool {
			st := &memStore{}
			led, err := New(st, zerolog.Nop())
			if err != nil {
				return false
			}

			base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
			for i := 0; i < count; i++ {
				rec, err := led.OpenPosition("AAPL", float64(i+1), entry, base.AddDate(0, 0, i))
				if err != nil {
					return false
				}
				// Alternate winners and losers.
				exit := entry * 1.1
				if i%2 == 1 {
					exit = entry * 0.9
				}
				if _, err := led.ClosePosition(rec.ID, exit, base.AddDate(0, 0, i+1), ""); err != nil {
					return false
				}
			}

			curve := led.EquityCurve(balance)
			closed := led.ListClosed(nil)
			sort.SliceStable(closed, func(i, j int) bool {
				if closed[i].ClosedAt.Equal(closed[j].ClosedAt) {
					return closed[i].ID < closed[j].ID
				}
				return closed[i].ClosedAt.Before(closed[j].ClosedAt)
			})
			if len(curve) != count || len(closed) != count {
				return false
			}

			prev := balance
			for i, point := range curve {
				delta := point.Equity - prev
				if math.Abs(delta-closed[i].ProfitUSD) > 1e-6 {
					t.Logf("step %d: delta %f != profit %f", i, delta, closed[i].ProfitUSD)
					return false
				}
				prev = point.Equity
			}
			return true
		},
		gen.IntRange(0, 15),
		gen.Float64Range(1, 1000),
		gen.Float64Range(0, 100000),
	))

	properties.TestingRun(t)
}
