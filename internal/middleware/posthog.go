package middleware

import (
	"net/http"

	"github.com/bilgisen/bookshall-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

const apiRequestEvent = "api_request"

// PosthogMiddleware records one api_request event per successful authenticated request.
// Internal and webhook routes carry no user identity and are never tracked.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		route := c.FullPath()
		if route == "" {
			return
		}

		props := map[string]any{
			"route":       route,
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
			"admin":       IsAdmin(c),
		}
		if target := c.Param("userId"); target != "" && target != userID {
			props["target_user_id"] = target
		}
		posthogClient.Enqueue(userID, apiRequestEvent, props)
	}
}
