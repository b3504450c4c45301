package middleware

import (
	"net/http"
	"strings"

	"crypto_miner/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT validates the Authorization bearer token and stores the user id in the
// gin context under "user_id".
func JWT(tokens *service.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		userID, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
