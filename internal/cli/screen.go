package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ccscreen/internal/errors"
	"ccscreen/internal/marketdata"
	"ccscreen/internal/models"
	"ccscreen/internal/report"
	"ccscreen/internal/screener"
	"ccscreen/internal/store"
	"ccscreen/internal/watchlist"
)

func newScreenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen the watchlist for covered-call candidates",
		Long: `Runs the covered-call screen: stock filters, expiration-date window,
then per-contract profit and safety thresholds. Surviving contracts are
written to a CSV report and echoed to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(cmd, app)
		},
	}

	// Every threshold can be overridden per run; defaults come from
	// the config file.
	cmd.Flags().String("file", "", "symbol list file (overrides config)")
	cmd.Flags().String("symbol", "", "screen a single symbol instead of the watchlist")
	cmd.Flags().String("env", "", "environment: live or sandbox (overrides config)")
	cmd.Flags().Float64("min-stock-price", 0, "minimum underlying price")
	cmd.Flags().Float64("max-ask", 0, "maximum option ask price")
	cmd.Flags().Float64("min-yield", 0, "minimum dividend yield (%)")
	cmd.Flags().Float64("max-pe", -1, "maximum P/E ratio (0 disables)")
	cmd.Flags().Int("min-days", 0, "minimum days to expiration")
	cmd.Flags().Int("max-days", 0, "maximum days to expiration")
	cmd.Flags().Float64("safety-margin", 0, "minimum safety margin (%)")
	cmd.Flags().Float64("projected-move", 0, "assumed underlying move (%)")
	cmd.Flags().Float64("min-gain-prct", 0, "minimum projected gain (%)")
	cmd.Flags().Float64("min-gain", 0, "minimum projected gain ($)")
	cmd.Flags().Float64("delta", 0, "delta approximation for projected value")
	cmd.Flags().Float64("commission", -1, "per-contract commission ($)")

	return cmd
}

func runScreen(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	cfg := applyScreenFlags(cmd, app)

	symbols, err := screenSymbols(cmd, app)
	if err != nil {
		return err
	}

	db, err := store.NewSQLiteStore(app.Config.Data.DBPath)
	if err != nil {
		return errors.Wrap(err, "opening snapshot store")
	}
	defer db.Close()

	start := time.Now()
	s := screener.New(marketdata.NewSnapshotGateway(db), app.Logger)
	result, err := s.Run(cmd.Context(), symbols, cfg)
	if err != nil {
		return errors.Wrap(err, "screening run failed")
	}
	elapsed := time.Since(start)

	builder := report.NewBuilder(cfg, app.Logger)
	rows := builder.Build(result)

	if output.IsJSON() {
		return output.JSON(map[string]interface{}{
			"keepers":         rows,
			"screened":        len(symbols),
			"elapsed_seconds": elapsed.Seconds(),
		})
	}

	output.Println(builder.Header())
	for _, row := range rows {
		output.Printf("%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			row.Symbol, row.Price, row.PERatio, row.Yield, row.ExDivDate,
			row.ExpireDate, row.Strike, row.Bid, row.Ask, row.SafetyMargin,
			row.ProfitDollars, row.ProfitPercent, row.DivProfitPrct,
			row.ProfitPerDay, row.MaxProfitNet)
	}
	output.Printf("(elapsed time %.2f seconds)\n", elapsed.Seconds())

	path, err := builder.WriteFile(app.Config.Screen.OutputDir, result.Now, rows)
	if err != nil {
		return errors.Wrap(err, "writing report")
	}
	output.Success("Wrote %d rows to %s", len(rows), path)
	return nil
}

// screenSymbols resolves the watchlist: a single --symbol, or the
// configured newline-delimited file. A missing symbol file is fatal
// before anything touches the snapshot store.
func screenSymbols(cmd *cobra.Command, app *App) ([]string, error) {
	if symbol, _ := cmd.Flags().GetString("symbol"); symbol != "" {
		return []string{symbol}, nil
	}

	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		path = app.Config.Screen.SymbolFile
	}
	if path == "" {
		return nil, errors.ErrNoSymbolFile
	}
	symbols, err := watchlist.Load(path)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbol file %s contains no symbols", path)
	}
	return symbols, nil
}

func screenerEnv(v string) models.Environment {
	if v == string(models.EnvSandbox) {
		return models.EnvSandbox
	}
	return models.EnvLive
}

// applyScreenFlags layers flag overrides over the configured
// thresholds. A flag left at its "unset" value keeps the config value.
func applyScreenFlags(cmd *cobra.Command, app *App) screener.Thresholds {
	cfg := app.Config.Thresholds()
	flags := cmd.Flags()

	if v, _ := flags.GetString("env"); v != "" {
		cfg.Environment = screenerEnv(v)
	}
	if v, _ := flags.GetFloat64("min-stock-price"); flags.Changed("min-stock-price") {
		cfg.MinStockPrice = v
	}
	if v, _ := flags.GetFloat64("max-ask"); flags.Changed("max-ask") {
		cfg.MaxAskPrice = v
	}
	if v, _ := flags.GetFloat64("min-yield"); flags.Changed("min-yield") {
		cfg.MinYield = v
	}
	if v, _ := flags.GetFloat64("max-pe"); flags.Changed("max-pe") {
		cfg.MaxPE = v
	}
	if v, _ := flags.GetInt("min-days"); flags.Changed("min-days") {
		cfg.MinDays = v
	}
	if v, _ := flags.GetInt("max-days"); flags.Changed("max-days") {
		cfg.MaxDays = v
	}
	if v, _ := flags.GetFloat64("safety-margin"); flags.Changed("safety-margin") {
		cfg.MinSafetyMargin = v
	}
	if v, _ := flags.GetFloat64("projected-move"); flags.Changed("projected-move") {
		cfg.ProjectedMove = v
	}
	if v, _ := flags.GetFloat64("min-gain-prct"); flags.Changed("min-gain-prct") {
		cfg.MinGainPercent = v
	}
	if v, _ := flags.GetFloat64("min-gain"); flags.Changed("min-gain") {
		cfg.MinGainDollars = v
	}
	if v, _ := flags.GetFloat64("delta"); flags.Changed("delta") {
		cfg.DeltaFactor = v
	}
	if v, _ := flags.GetFloat64("commission"); flags.Changed("commission") {
		cfg.Commission = v
	}
	return cfg
}
