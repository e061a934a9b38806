package pgsql

import (
	"log/slog"

	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, creditOpts CreditRepositoryOptions, logger *slog.Logger) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CreditRepo: NewCreditRepository(dbPool, creditOpts, logger),
		UserRepo:   NewUserRepository(dbPool, logger),
	}
}
