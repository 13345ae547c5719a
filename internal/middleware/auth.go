package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "leadcrm/internal/pkg/jwt"
	"leadcrm/internal/pkg/response"
)

// Auth validates the bearer token and stores the authenticated user id in
// the gin context under "user_id".
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			response.Unauthorized(c, "Missing or invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Unauthorized(c, "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth, or 0.
func UserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}
