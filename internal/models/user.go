package models

import "time"

// User is a row of the users directory mirror.
type User struct {
	UserID            string    `db:"user_id"`
	Email             *string   `db:"email"`
	Name              *string   `db:"name"`
	Role              string    `db:"role"`
	BillingCustomerID *string   `db:"billing_customer_id"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
