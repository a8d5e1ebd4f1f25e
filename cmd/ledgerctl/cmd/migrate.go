package cmd

import (
	"log/slog"

	"github.com/SscSPs/settlement_ledger/internal/platform/config"
	"github.com/SscSPs/settlement_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down",
	Short:     "Apply or roll back schema migrations",
	Long:      "up applies every pending migration. down rolls back the most recent one.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		return database.RunMigrations(slog.Default(), cfg.DatabaseURL, cfg.MigrationsPath, database.Direction(args[0]))
	},
}
