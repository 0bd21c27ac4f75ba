package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	accountControllers "github.com/sudipta-bhowmick/plant-nursery-api/controllers/account"
)

// SetupAccountRoutes registers registration and session endpoints.
func SetupAccountRoutes(r *gin.Engine, db *gorm.DB) {
	// GET /register/ documents the form fields for API clients.
	r.GET("/register/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"fields": []string{"username", "email", "password"}})
	})
	r.POST("/register/", accountControllers.Register(db))

	r.POST("/login/", accountControllers.Login(db))
	r.POST("/logout/", accountControllers.Logout())
}
