package cli

import (
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Bni3259/trading-journal/internal/errors"
	"github.com/Bni3259/trading-journal/internal/ledger"
)

// addReportCommands adds the realized-performance commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newEquityCmd(app))
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show closed trades and summary statistics",
		Example: `  journal report
  journal report --period weekly
  journal report --since 2026-08-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			since, err := resolveSince(cmd)
			if err != nil {
				return err
			}

			closed := app.Ledger.ListClosed(since)
			stats := ledger.SummaryStats(closed)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"trades":     closed,
					"net_profit": stats.NetProfit,
					"win_rate":   stats.WinRate,
					"wins":       stats.Wins,
					"losses":     stats.Losses,
				})
			}

			if len(closed) == 0 {
				output.Info("No closed trades for this period.")
				return nil
			}

			output.Bold("Closed Trades")
			table := NewTable(output, "ID", "Ticker", "Entry", "Exit", "Qty", "Entry Price", "Exit Price", "P&L", "Conclusions")
			for _, rec := range closed {
				table.AddRow(
					strconv.FormatInt(rec.ID, 10),
					rec.Ticker,
					FormatDate(rec.OpenedAt),
					FormatDate(rec.ClosedAt),
					FormatQuantity(rec.Quantity),
					FormatPrice(rec.EntryPrice),
					FormatPrice(rec.ExitPrice),
					output.FormatPnL(rec.ProfitUSD),
					TruncateString(rec.Conclusions, 30),
				)
			}
			table.Render()
			output.Println()

			headline := color.New(color.Bold, color.FgGreen)
			if stats.NetProfit < 0 {
				headline = color.New(color.Bold, color.FgRed)
			}
			headline.Fprintf(cmd.OutOrStdout(), "Net P&L: %s\n", FormatUSD(stats.NetProfit))
			output.Printf("Trades: %d   Wins: %d   Losses: %d   Win rate: %.1f%%\n",
				stats.Trades, stats.Wins, stats.Losses, stats.WinRate)
			return nil
		},
	}

	cmd.Flags().String("period", "", "rollup period (weekly, monthly)")
	cmd.Flags().String("since", "", "only trades entered on or after this date (YYYY-MM-DD)")
	return cmd
}

// resolveSince turns the --period/--since flags into a cutoff timestamp.
func resolveSince(cmd *cobra.Command) (*time.Time, error) {
	sinceStr, _ := cmd.Flags().GetString("since")
	period, _ := cmd.Flags().GetString("period")

	if sinceStr != "" {
		t, err := time.Parse("2006-01-02", sinceStr)
		if err != nil {
			return nil, errors.NewValidationError("since", sinceStr, "must be YYYY-MM-DD")
		}
		return &t, nil
	}

	now := time.Now()
	switch period {
	case "":
		return nil, nil
	case "weekly":
		t := now.AddDate(0, 0, -7)
		return &t, nil
	case "monthly":
		t := now.AddDate(0, -1, 0)
		return &t, nil
	default:
		return nil, errors.NewValidationError("period", period, "must be weekly or monthly")
	}
}

func newEquityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Show the equity curve over closed trades",
		Example: `  journal equity
  journal equity --balance 25000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			balance, _ := cmd.Flags().GetFloat64("balance")

			curve := app.Ledger.EquityCurve(balance)
			if output.IsJSON() {
				return output.JSON(curve)
			}

			if len(curve) == 0 {
				output.Info("No closed trades yet; equity is %s.", FormatUSD(balance))
				return nil
			}

			output.Bold("Equity Curve (starting balance %s)", FormatUSD(balance))
			table := NewTable(output, "Date", "Equity")
			for _, point := range curve {
				table.AddRow(FormatDate(point.Date), FormatUSD(point.Equity))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Float64("balance", 10000, "initial account balance")
	return cmd
}
