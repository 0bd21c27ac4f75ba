package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the storefront,
// account, order, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public storefront (catalog + cart, works for guests)
	SetupStoreRoutes(r, db)

	// Registration / login / logout
	SetupAccountRoutes(r, db)

	// Checkout and order history (login required)
	SetupOrderRoutes(r, db)

	// Admin surface (API-key protected)
	SetupAdminRoutes(r, db)
}
