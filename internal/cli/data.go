package cli

import (
	"github.com/spf13/cobra"

	"ccscreen/internal/errors"
	"ccscreen/internal/store"
)

func newDataCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage the market-data snapshot store",
		Long: `Import and inspect previously fetched market data. The screener only
reads this store; fetching quotes and chains from a brokerage happens
outside this tool.`,
	}

	cmd.AddCommand(newDataImportCmd(app))
	cmd.AddCommand(newDataShowCmd(app))

	return cmd
}

func newDataImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Import a market-data snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			db, err := store.NewSQLiteStore(app.Config.Data.DBPath)
			if err != nil {
				return errors.Wrap(err, "opening snapshot store")
			}
			defer db.Close()

			quotes, contracts, err := store.ImportSnapshot(cmd.Context(), db, args[0])
			if err != nil {
				return errors.Wrap(err, "importing snapshot")
			}

			app.Logger.Info().
				Str("path", args[0]).
				Int("quotes", quotes).
				Int("contracts", contracts).
				Msg("snapshot imported")

			if output.IsJSON() {
				return output.JSON(map[string]int{"quotes": quotes, "contracts": contracts})
			}
			output.Success("Imported %d quotes and %d contracts from %s", quotes, contracts, args[0])
			return nil
		},
	}
}

func newDataShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List symbols with stored quotes",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			db, err := store.NewSQLiteStore(app.Config.Data.DBPath)
			if err != nil {
				return errors.Wrap(err, "opening snapshot store")
			}
			defer db.Close()

			symbols, err := db.ListSymbols(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "listing symbols")
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"symbols": symbols})
			}
			if len(symbols) == 0 {
				output.Warning("No quotes in the snapshot store; run 'ccscreen data import' first")
				return nil
			}
			for _, symbol := range symbols {
				output.Println(symbol)
			}
			return nil
		},
	}
}
