package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/swagmedia/swagmedia-golang/internal/auth"
)

// AuthMiddleware validates the Bearer token and stores the member ID
// in the request context under "memberID".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		memberID, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("memberID", memberID)
		c.Next()
	}
}

// MemberID pulls the authenticated member id set by AuthMiddleware.
func MemberID(c *gin.Context) string {
	id, _ := c.Get("memberID")
	s, _ := id.(string)
	return s
}
