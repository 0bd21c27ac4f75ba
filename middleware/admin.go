package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// ValidateAdmin protects the admin surface (catalog management, order
// status updates). It accepts either the configured API key or a
// bearer token carrying the admin role.
func ValidateAdmin(c *gin.Context) {
	if apiKey := c.GetHeader("X-API-KEY"); apiKey != "" && apiKey == os.Getenv("ADMIN_API_KEY") {
		c.Next()
		return
	}

	if claims := bearerClaims(c); claims != nil {
		if role, _ := claims["role"].(string); role == "admin" {
			c.Next()
			return
		}
	}

	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing admin credentials"})
	c.Abort()
}
