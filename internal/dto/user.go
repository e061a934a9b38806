package dto

import "github.com/bilgisen/bookshall-sub000/internal/core/domain"

// SyncUserRequest mirrors one user directory entry. Omitted optional fields keep their stored value.
type SyncUserRequest struct {
	Email             *string         `json:"email" binding:"omitempty,email"`
	Name              *string         `json:"name"`
	Role              domain.UserRole `json:"role" binding:"omitempty,oneof=user admin"`
	BillingCustomerID *string         `json:"billingCustomerId"`
}

// ToDomainUser builds the directory entry for userID.
func (r SyncUserRequest) ToDomainUser(userID string) domain.User {
	u := domain.User{UserID: userID, Role: r.Role}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.BillingCustomerID != nil {
		u.BillingCustomerID = *r.BillingCustomerID
	}
	return u
}
