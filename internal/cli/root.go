package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trade-journal/internal/api"
	"trade-journal/internal/config"
	"trade-journal/internal/journal"
	"trade-journal/internal/logging"
	"trade-journal/internal/store"
	"trade-journal/pkg/utils"
)

// Version information
const (
	Version   = "0.3.0"
	BuildDate = "2025-02-01"
)

// commandTimeout bounds every backend round trip a command makes.
const commandTimeout = 60 * time.Second

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	ConfigDir string
	Logger    zerolog.Logger
	Journal   *journal.Service
	Store     store.Store
}

// setupFunc builds the App from flags before a command runs.
type setupFunc func(app *App, cmd *cobra.Command) error

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(logger zerolog.Logger) *cobra.Command {
	return newRootCmd(&App{Logger: logger}, setupApp)
}

func newRootCmd(app *App, setup setupFunc) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tradejournal",
		Short: "Options trading journal",
		Long: `tradejournal records options spreads against the journal backend and
reports realized P&L, theoretical max profit/loss and capital usage.

Use 'tradejournal trades list' to browse trades and 'tradejournal summary'
for the dashboard figures.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if setup != nil {
				if err := setup(app, cmd); err != nil {
					return err
				}
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Store != nil {
				return app.Store.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trade-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addSummaryCommands(rootCmd, app)
	addHelpCommands(rootCmd)

	return rootCmd
}

// setupApp loads configuration and wires the client, snapshot and service.
func setupApp(app *App, cmd *cobra.Command) error {
	dir, _ := cmd.Flags().GetString("config")
	if dir == "" {
		dir = config.DefaultConfigDir()
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	app.Config = cfg
	app.ConfigDir = dir

	logCfg := cfg.LoggingConfig()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.Console = true
	}
	app.Logger = logging.NewLoggerWithConfig(logCfg)

	if !cfg.UI.ColorEnabled {
		color.NoColor = true
	}

	client := api.New(api.OptionsFromConfig(cfg.API), app.Logger)

	if cfg.Store.Enabled {
		dataStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			app.Logger.Warn().Err(err).Msg("Failed to open snapshot store, offline mode unavailable")
		} else {
			app.Store = dataStore
			app.Logger.Debug().Str("path", cfg.Store.Path).Msg("Snapshot store opened")
		}
	}

	app.Journal = journal.NewService(client, app.Store, journal.Options{
		Baseline: cfg.Capital.BaselineAmount(),
		PageSize: cfg.UI.PageSize,
	}, app.Logger)
	return nil
}

func (app *App) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx := logging.WithLogger(parent, app.Logger)
	return context.WithTimeout(ctx, commandTimeout)
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("tradejournal v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			path := filepath.Join(app.ConfigDir, "config.toml")
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Backend")
	output.Printf("  Base URL:        %s\n", cfg.API.BaseURL)
	output.Printf("  Timeout:         %s\n", cfg.API.Timeout)
	output.Printf("  Max Retries:     %d\n", cfg.API.MaxRetries)
	output.Printf("  Rate Limit:      %.1f req/s\n", cfg.API.RateLimit)
	output.Printf("  Cache TTL:       %s\n", cfg.API.CacheTTL)
	output.Printf("  Circuit Breaker: %d failures, %s cooldown\n", cfg.API.BreakerThreshold, cfg.API.BreakerCooldown)
	output.Println()

	output.Bold("Capital")
	if baseline := cfg.Capital.BaselineAmount(); baseline.IsPositive() {
		output.Printf("  Baseline:        %s\n", utils.FormatRupees(baseline))
	} else {
		output.Printf("  Baseline:        from transfers\n")
	}
	output.Println()

	output.Bold("Display")
	output.Printf("  Color:           %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Page Size:       %d\n", cfg.UI.PageSize)
	output.Println()

	output.Bold("Storage")
	output.Printf("  Snapshot:        %v\n", cfg.Store.Enabled)
	output.Printf("  Path:            %s\n", cfg.Store.Path)
	output.Printf("  Log File:        %s (%s)\n", cfg.Log.File, cfg.Log.Level)
}
