package repositories

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
)

// UserReader defines read operations for the user directory mirror
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByBillingCustomerID retrieves the user linked to a billing provider customer.
	FindUserByBillingCustomerID(ctx context.Context, customerID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for the user directory mirror
type UserWriter interface {
	// SaveUser inserts or updates a user and returns the stored row.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)

	// LinkBillingCustomer records the billing customer id of a user.
	LinkBillingCustomer(ctx context.Context, userID, customerID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
