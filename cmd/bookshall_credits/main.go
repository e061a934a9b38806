package main

import "github.com/bilgisen/bookshall-sub000/internal/cli"

// @title Bookshall Credits API
// @version 1.0
// @description Credit ledger and balances for Bookshall accounts.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey InternalToken
// @in header
// @name X-Internal-Token
// @description Shared secret of sibling Bookshall services.
func main() {
	cli.Execute()
}
