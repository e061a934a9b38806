package mapping

import (
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	"github.com/bilgisen/bookshall-sub000/internal/models"
)

// ToModelUser converts a domain User to a model User. Empty optional fields become NULL.
func ToModelUser(d domain.User) models.User {
	role := d.Role
	if role == "" {
		role = domain.RoleUser
	}
	return models.User{
		UserID:            d.UserID,
		Email:             nullableString(d.Email),
		Name:              nullableString(d.Name),
		Role:              string(role),
		BillingCustomerID: nullableString(d.BillingCustomerID),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:            m.UserID,
		Email:             derefString(m.Email),
		Name:              derefString(m.Name),
		Role:              domain.UserRole(m.Role),
		BillingCustomerID: derefString(m.BillingCustomerID),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
