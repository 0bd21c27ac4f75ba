package auth

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type AdminLoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// AdminLogin exchanges the configured admin credentials for a bearer
// token. Credentials come from ADMIN_EMAIL and ADMIN_PASSWORD; when
// either is unset the endpoint refuses every login.
func AdminLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		email := os.Getenv("ADMIN_EMAIL")
		password := os.Getenv("ADMIN_PASSWORD")

		emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(email)) == 1
		passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(password)) == 1
		if email == "" || password == "" || !emailOK || !passwordOK {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
			return
		}

		token, err := IssueAdminToken(req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
