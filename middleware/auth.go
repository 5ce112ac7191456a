package middleware

import (
	"net/http"
	"strings"

	"tutorly/config"
	"tutorly/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware guards the dashboard API with a bearer token. When no
// JWT secret is configured (local development) the check is disabled.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.AppConfig.JWTSecret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if sub, err := utils.ExtractIDFromToken(tokenString); err == nil {
			c.Set("subject", sub)
		}
		c.Next()
	}
}
