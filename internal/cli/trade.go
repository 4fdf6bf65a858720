package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bni3259/trading-journal/internal/errors"
	"github.com/Bni3259/trading-journal/internal/ledger"
	"github.com/Bni3259/trading-journal/internal/models"
)

// addTradeCommands adds the position lifecycle commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newOpenCmd(app))
	rootCmd.AddCommand(newCloseCmd(app))
	rootCmd.AddCommand(newPositionsCmd(app))
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <ticker> <quantity> <entry-price>",
		Short: "Open a new position",
		Long:  "Record a new open position in the journal.",
		Example: `  journal open AAPL 10 150.00
  journal open msft 5 420.50`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			quantity, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.NewValidationError("quantity", args[1], "must be a number")
			}
			price, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return errors.NewValidationError("entry_price", args[2], "must be a number")
			}

			rec, err := app.Ledger.OpenPosition(args[0], quantity, price, time.Now())
			if err != nil {
				output.Error("Could not open position: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Success("✓ Opened #%d %s  qty %s @ %s", rec.ID, rec.Ticker,
				FormatQuantity(rec.Quantity), FormatPrice(rec.EntryPrice))
			return nil
		},
	}
}

func newCloseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close <id> [exit-price]",
		Short: "Close an open position",
		Long: `Close an open position at the given exit price.

When the exit price is omitted the latest quote for the ticker is used.`,
		Example: `  journal close 3 160.00
  journal close 3 --conclusions "took profit at resistance"
  journal close 3`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.NewValidationError("id", args[0], "must be an integer")
			}
			conclusions, _ := cmd.Flags().GetString("conclusions")

			var exitPrice float64
			if len(args) == 2 {
				exitPrice, err = strconv.ParseFloat(args[1], 64)
				if err != nil {
					return errors.NewValidationError("exit_price", args[1], "must be a number")
				}
			} else {
				exitPrice, err = latestPriceForTrade(ctx, app, id)
				if err != nil {
					output.Warning("Awaiting price data; pass an exit price explicitly.")
					return err
				}
			}

			rec, err := app.Ledger.ClosePosition(id, exitPrice, time.Now(), conclusions)
			if err != nil {
				output.Error("Could not close position: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}
			output.Success("✓ Closed #%d %s @ %s", rec.ID, rec.Ticker, FormatPrice(rec.ExitPrice))
			output.Printf("  Realized P&L: %s\n", output.FormatPnL(rec.ProfitUSD))
			return nil
		},
	}

	cmd.Flags().String("conclusions", "", "free-text takeaways recorded with the close")
	return cmd
}

// latestPriceForTrade fetches the live quote for the ticker of an open trade.
func latestPriceForTrade(ctx context.Context, app *App, id int64) (float64, error) {
	for _, rec := range app.Ledger.ListOpen() {
		if rec.ID == id {
			return app.Feed.LatestPrice(ctx, rec.Ticker)
		}
	}
	return 0, errors.Wrapf(errors.ErrTradeNotFound, "trade %d", id)
}

func newPositionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "positions",
		Short: "Show open positions with live P&L",
		Long: `List open positions marked to market with the latest quotes.

When the price feed is unavailable the positions are still listed, with the
unrealized P&L withheld.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			open := app.Ledger.ListOpen()
			if len(open) == 0 {
				output.Info("No open positions.")
				return nil
			}

			tickers := make([]string, 0, len(open))
			seen := map[string]bool{}
			for _, rec := range open {
				if !seen[rec.Ticker] {
					seen[rec.Ticker] = true
					tickers = append(tickers, rec.Ticker)
				}
			}

			// Best effort: a feed failure degrades the display, it never
			// blocks the listing.
			prices, err := app.Feed.LatestPrices(ctx, tickers)
			if err != nil {
				app.Logger.Warn().Err(err).Msg("Price feed unavailable")
				prices = map[string]float64{}
			}

			if output.IsJSON() {
				return output.JSON(positionRows(open, prices))
			}

			output.Bold("Open Positions")
			table := NewTable(output, "ID", "Ticker", "Entry", "Qty", "Entry Price", "Current", "P&L", "Return")
			missing := 0
			for _, rec := range open {
				current, ok := prices[rec.Ticker]
				if !ok {
					missing++
					table.AddRow(
						strconv.FormatInt(rec.ID, 10),
						rec.Ticker,
						FormatDate(rec.OpenedAt),
						FormatQuantity(rec.Quantity),
						FormatPrice(rec.EntryPrice),
						"—", "—", "—",
					)
					continue
				}
				pnl, err := ledger.Unrealized(rec, current)
				if err != nil {
					table.AddRow(strconv.FormatInt(rec.ID, 10), rec.Ticker,
						FormatDate(rec.OpenedAt), FormatQuantity(rec.Quantity),
						FormatPrice(rec.EntryPrice), FormatPrice(current), "—", "—")
					continue
				}
				table.AddRow(
					strconv.FormatInt(rec.ID, 10),
					rec.Ticker,
					FormatDate(rec.OpenedAt),
					FormatQuantity(rec.Quantity),
					FormatPrice(rec.EntryPrice),
					FormatPrice(current),
					output.FormatPnL(pnl.USD),
					output.FormatPercent(pnl.Pct),
				)
			}
			table.Render()

			if missing > 0 {
				output.Println()
				output.Warning("Awaiting price data for %d position(s).", missing)
			}
			return nil
		},
	}
}

// positionRow is the JSON shape for one open position.
type positionRow struct {
	ID         int64    `json:"id"`
	Ticker     string   `json:"ticker"`
	EntryDate  string   `json:"entry_date"`
	Quantity   float64  `json:"quantity"`
	EntryPrice float64  `json:"entry_price"`
	Current    *float64 `json:"current_price"`
	PnLUSD     *float64 `json:"pnl_usd"`
	PnLPct     *float64 `json:"pnl_pct"`
}

func positionRows(open []models.TradeRecord, prices map[string]float64) []positionRow {
	rows := make([]positionRow, 0, len(open))
	for _, rec := range open {
		row := positionRow{
			ID:         rec.ID,
			Ticker:     rec.Ticker,
			EntryDate:  FormatDate(rec.OpenedAt),
			Quantity:   rec.Quantity,
			EntryPrice: rec.EntryPrice,
		}
		if current, ok := prices[rec.Ticker]; ok {
			if pnl, err := ledger.Unrealized(rec, current); err == nil {
				c, usd, pct := current, pnl.USD, pnl.Pct
				row.Current = &c
				row.PnLUSD = &usd
				row.PnLPct = &pct
			}
		}
		rows = append(rows, row)
	}
	return rows
}
