package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	"github.com/bilgisen/bookshall-sub000/internal/models"
	"github.com/bilgisen/bookshall-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// NewUserRepository creates a PgxUserRepository.
func NewUserRepository(pool *pgxpool.Pool, logger *slog.Logger) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository{Pool: pool, log: logger}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, name, role, billing_customer_id, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.Name,
		&m.Role,
		&m.BillingCustomerID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

// SaveUser upserts a directory entry. Empty optional fields do not overwrite stored values.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	m := mapping.ToModelUser(user)

	query := `
		INSERT INTO users (user_id, email, name, role, billing_customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			email = COALESCE(EXCLUDED.email, users.email),
			name = COALESCE(EXCLUDED.name, users.name),
			role = EXCLUDED.role,
			billing_customer_id = COALESCE(EXCLUDED.billing_customer_id, users.billing_customer_id),
			updated_at = EXCLUDED.updated_at
		RETURNING ` + userColumns + `;`

	saved, err := scanUser(r.Pool.QueryRow(ctx, query,
		m.UserID,
		m.Email,
		m.Name,
		m.Role,
		m.BillingCustomerID,
		m.CreatedAt,
		m.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("email or billing customer already linked to another user: %w", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return saved, nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + `;`
	u, err := scanUser(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByBillingCustomerID(ctx context.Context, customerID string) (*domain.User, error) {
	return r.findOne(ctx, `billing_customer_id = $1`, customerID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `LOWER(email) = LOWER($1)`, email)
}

func (r *PgxUserRepository) LinkBillingCustomer(ctx context.Context, userID, customerID string) error {
	query := `
		UPDATE users
		SET billing_customer_id = $2, updated_at = $3
		WHERE user_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, customerID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("billing customer %s already linked: %w", customerID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to link billing customer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
