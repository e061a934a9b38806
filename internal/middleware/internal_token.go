package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// InternalTokenHeader carries the shared secret of sibling services.
const InternalTokenHeader = "X-Internal-Token"

// InternalTokenAuth guards service-to-service routes. The presented token is compared against
// a bcrypt hash, so the plain secret never lives in this service's configuration.
// An empty hash rejects every request.
func InternalTokenAuth(tokenHash string) gin.HandlerFunc {
	hash := []byte(tokenHash)
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token := c.GetHeader(InternalTokenHeader)
		if token == "" || len(hash) == 0 {
			logger.Warn("Internal token missing or not configured")
			abortUnauthorized(c, "Internal token required")
			return
		}

		if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
			logger.Warn("Internal token rejected")
			abortUnauthorized(c, "Invalid internal token")
			return
		}

		c.Set("authMethod", "internal_token")
		c.Next()
	}
}
