package cli

import (
	"fmt"
	"time"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	"github.com/bilgisen/bookshall-sub000/internal/utils"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().Bool("admin", false, "Issue the token with the admin role")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to JWT_EXPIRY_DURATION)")
}

var tokenCmd = &cobra.Command{
	Use:   "token USER_ID",
	Short: "Mint an access token for local development",
	Long: `Signs an access token with JWT_SECRET, in the format the authentication service issues.
Refused when IS_PRODUCTION is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}
	if cfg.IsProduction {
		return fmt.Errorf("token minting is disabled in production")
	}

	admin, _ := cmd.Flags().GetBool("admin")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	if ttl <= 0 {
		ttl = cfg.JWTExpiryDuration
	}
	role := domain.RoleUser
	if admin {
		role = domain.RoleAdmin
	}

	token, err := utils.GenerateJWT(args[0], string(role), cfg.JWTSecret, ttl, cfg.JWTIssuer)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Now().Add(ttl).UTC().Format(time.RFC3339))
	return nil
}
