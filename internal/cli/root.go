// Package cli wires the bookshall_credits commands.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/bilgisen/bookshall-sub000/internal/platform/config"
	"github.com/bilgisen/bookshall-sub000/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookshall_credits",
	Short: "Credit ledger and balances for Bookshall",
	Long: `bookshall_credits owns the credit balance of every Bookshall user.
Paid actions spend credits, deletions refund them and subscriptions grant them.
Every change is recorded as an immutable ledger entry.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is the only entry point of the binary.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the process logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func openPool(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	return database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		Ping:     cfg.EnableDBCheck,
	}, logger)
}
