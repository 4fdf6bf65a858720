package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Bni3259/trading-journal/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the journal HTTP API",
		Long:  "Serve the journal over a local JSON API until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(server.Config{
				Addr:         app.Config.Server.Addr,
				ReadTimeout:  app.Config.Server.ReadTimeout,
				WriteTimeout: app.Config.Server.WriteTimeout,
			}, app.Ledger, app.Feed, app.Logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.Logger.Info().Str("addr", app.Config.Server.Addr).Msg("Serving journal API")
			return srv.Run(ctx)
		},
	}
}
