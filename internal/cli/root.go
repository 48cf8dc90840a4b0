// Package cli provides the command-line interface for the screener.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ccscreen/internal/config"
	"ccscreen/internal/logging"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "ccscreen",
		Short: "In-the-money covered-call option screener",
		Long: `ccscreen screens option chains against a watchlist for in-the-money
covered-call candidates that meet configured profitability and safety
thresholds, and writes a ranked CSV report.

It runs offline against previously fetched market data; import a
snapshot with 'ccscreen data import' before screening.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/ccscreen)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newScreenCmd(app))
	rootCmd.AddCommand(newDataCmd(app))

	return rootCmd
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
				output.Printf("ccscreen v%s\n", Version)
			}
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

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	s := cfg.Screen
	output.Bold("Screening\n")
	output.Printf("  Environment:        %s\n", s.Environment)
	output.Printf("  Symbol file:        %s\n", s.SymbolFile)
	output.Printf("  Output dir:         %s\n", s.OutputDir)
	output.Printf("  Min stock price:    %.2f\n", s.MinStockPrice)
	output.Printf("  Max ask:            %.2f\n", s.MaxAsk)
	output.Printf("  Stock price factor: %.2f\n", s.StockPriceFactor)
	output.Printf("  Min yield:          %.2f%%\n", s.MinYield)
	output.Printf("  Max P/E:            %.2f\n", s.MaxPE)
	output.Printf("  Days window:        %d-%d\n", s.MinDays, s.MaxDays)
	output.Printf("  Safety margin:      %.2f%%\n", s.SafetyMargin)
	output.Printf("  Projected move:     %.2f%%\n", s.ProjectedMove)
	output.Printf("  Min gain:           %.2f%% / $%.2f\n", s.MinGainPrct, s.MinGain)
	output.Printf("  Delta factor:       %.2f\n", s.Delta)
	output.Printf("  Commission:         $%.2f\n", s.Commission)
	output.Bold("Data\n")
	output.Printf("  Snapshot DB:        %s\n", cfg.Data.DBPath)
}
