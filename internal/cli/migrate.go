package cli

import (
	"fmt"

	"github.com/bilgisen/bookshall-sub000/migrations"
	"github.com/bilgisen/bookshall-sub000/pkg/database"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down",
	Short:     "Apply or revert the database schema",
	Long:      `Runs the embedded SQL migrations against PGSQL_URL. "down" reverts every migration and drops the ledger.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("PGSQL_URL is required")
	}
	return database.Migrate(cfg.DatabaseURL, migrations.FS, database.MigrationDirection(args[0]), logger)
}
