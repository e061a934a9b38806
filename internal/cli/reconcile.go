package cli

import (
	"encoding/json"
	"errors"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	"github.com/bilgisen/bookshall-sub000/internal/core/services"
	"github.com/bilgisen/bookshall-sub000/internal/repositories/database/pgsql"
	"github.com/bilgisen/bookshall-sub000/pkg/database"
	"github.com/spf13/cobra"
)

// errDriftFound makes the command exit with status 1 without printing usage.
var errDriftFound = errors.New("balance drift found")

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileCmd.Flags().String("user", "", "Check a single user instead of every balance")
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare cached balances with their ledgers",
	Long: `Compares every cached balance with the sum of its earn and spend entries
and prints the drifted users as JSON. Exits with status 1 when drift is found.
Nothing is corrected automatically.`,
	Args: cobra.NoArgs,
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	userID, _ := cmd.Flags().GetString("user")

	ctx := cmd.Context()
	dbPool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool, logger)

	svc := services.NewReconciliationService(pgsql.NewCreditRepository(dbPool, pgsql.CreditRepositoryOptions{}, logger))

	var report *domain.ReconciliationReport
	if userID != "" {
		report, err = svc.CheckUser(ctx, userID)
	} else {
		report, err = svc.CheckAll(ctx)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	if report.HasDrift() {
		return errDriftFound
	}
	return nil
}
