package middleware

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userRoleKey  = contextKey("userRole")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok && userID != ""
	}
	// check in the request context as well
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserRoleFromContext returns the role claim of the authenticated user, defaulting to RoleUser.
func GetUserRoleFromContext(c *gin.Context) domain.UserRole {
	if role, ok := c.Request.Context().Value(userRoleKey).(domain.UserRole); ok && role != "" {
		return role
	}
	return domain.RoleUser
}

// IsAdmin reports whether the authenticated caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return GetUserRoleFromContext(c) == domain.RoleAdmin
}

// withIdentity stores the caller identity in ctx.
func withIdentity(ctx context.Context, userID string, role domain.UserRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}
