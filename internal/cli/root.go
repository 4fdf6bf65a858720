// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Bni3259/trading-journal/internal/config"
	"github.com/Bni3259/trading-journal/internal/feed"
	"github.com/Bni3259/trading-journal/internal/ledger"
	"github.com/Bni3259/trading-journal/internal/logging"
	"github.com/Bni3259/trading-journal/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies. The ledger instance is owned here
// and passed explicitly; there is no ambient global session state.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.Store
	Ledger *ledger.Ledger
	Feed   feed.PriceFeed
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Personal trading journal",
		Long: `Trading Journal logs positions, marks open positions to market with live
quotes, and reports realized performance.

Use 'journal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return app.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Store != nil {
				return app.Store.Close()
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trading-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	addTradeCommands(rootCmd, app)
	addReportCommands(rootCmd, app)
	rootCmd.AddCommand(newServeCmd(app))

	return rootCmd
}

// init wires the store, ledger and price feed from the loaded config.
func (a *App) init() error {
	if a.Ledger != nil {
		return nil
	}

	var (
		st  store.Store
		err error
	)
	switch a.Config.Storage.Backend {
	case "sqlite":
		st, err = store.NewSQLiteStore(a.Config.Storage.Path)
	default:
		st, err = store.NewCSVStore(a.Config.Storage.Path)
	}
	if err != nil {
		return fmt.Errorf("initializing %s store: %w", a.Config.Storage.Backend, err)
	}
	a.Store = st
	a.Logger.Debug().
		Str("backend", a.Config.Storage.Backend).
		Str("path", a.Config.Storage.Path).
		Msg("Store initialized")

	led, err := ledger.New(st, a.Logger)
	if err != nil {
		st.Close()
		return err
	}
	a.Ledger = led

	if a.Feed == nil {
		a.Feed = feed.NewQuoteClient(a.Config.Feed.BaseURL, a.Config.Feed.Timeout, a.Logger)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Trading Journal v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Storage")
			output.Printf("  Backend: %s\n", app.Config.Storage.Backend)
			output.Printf("  Path:    %s\n", app.Config.Storage.Path)
			output.Println()
			output.Bold("Feed")
			output.Printf("  URL:     %s\n", app.Config.Feed.BaseURL)
			output.Printf("  Timeout: %s\n", app.Config.Feed.Timeout)
			output.Println()
			output.Bold("Server")
			output.Printf("  Addr:    %s\n", app.Config.Server.Addr)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	return cmd
}
