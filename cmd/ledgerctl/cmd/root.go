// Package cmd provides the ledgerctl commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SscSPs/settlement_ledger/internal/adapters/fxclient"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/core/services"
	"github.com/SscSPs/settlement_ledger/internal/platform/config"
	"github.com/SscSPs/settlement_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/settlement_ledger/internal/utils/export"
	"github.com/SscSPs/settlement_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var (
	debug  bool
	format string
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the settlement ledger",
	Long: `ledgerctl runs migrations, checks the account role mapping, posts
documents and prints reports against the ledger database.

Configuration is read from the environment and .env, like the server.

Example:
  ledgerctl migrate up
  ledgerctl post invoice 6f1c... --actor ops@example.com
  ledgerctl report aging --side ar --as-of 2024-06-30 --format csv`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(reverseCmd)
	rootCmd.AddCommand(reportCmd)
}

// ledger is a fully wired service container plus the pool it owns.
type ledger struct {
	services *portssvc.ServiceContainer
	chart    *services.ChartOfAccounts
	close    func()
}

func openLedger(ctx context.Context) (*ledger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}

	var provider portssvc.RateProvider
	if cfg.FXProviderEnabled() {
		fx, err := fxclient.New(ctx, fxclient.Config{
			BaseURL:      cfg.FXProviderURL,
			TokenURL:     cfg.FXTokenURL,
			ClientID:     cfg.FXClientID,
			ClientSecret: cfg.FXClientSecret,
		})
		if err != nil {
			database.ClosePgxPool(pool)
			return nil, err
		}
		provider = fx
	}

	container, chart, err := services.NewServiceContainer(ctx, cfg, pgsql.NewRepositoryProvider(pool), provider)
	if err != nil {
		database.ClosePgxPool(pool)
		return nil, err
	}
	return &ledger{services: container, chart: chart, close: func() { database.ClosePgxPool(pool) }}, nil
}

// render writes v as indented JSON, or as CSV when --format csv is given and v is tabular.
func render(w io.Writer, v any) error {
	if format == "csv" {
		t, ok := v.(export.Tabular)
		if !ok {
			return fmt.Errorf("csv output is not available for this command")
		}
		return export.WriteCSV(w, t)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
