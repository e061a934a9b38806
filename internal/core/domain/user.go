package domain

import "time"

// UserRole is the coarse role claim carried by the directory and by access tokens.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User mirrors the externally owned user directory. Only the fields the ledger needs are kept.
type User struct {
	UserID            string    `json:"userId"`
	Email             string    `json:"email,omitempty"`
	Name              string    `json:"name,omitempty"`
	Role              UserRole  `json:"role"`
	BillingCustomerID string    `json:"billingCustomerId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
