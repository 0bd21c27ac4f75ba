package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/sudipta-bhowmick/plant-nursery-api/controllers/cart"
	catalogControllers "github.com/sudipta-bhowmick/plant-nursery-api/controllers/catalog"
)

// SetupStoreRoutes registers the public storefront endpoints. The cart
// routes work for both guests (session cart) and logged-in users
// (persisted cart); the identity middleware picks the backend.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/", catalogControllers.ListPlants(db))

	r.GET("/plant/:id/", catalogControllers.GetPlant(db))
	r.POST("/plant/:id/", cartControllers.AddToCart(db))

	r.GET("/cart/", cartControllers.ViewCart(db))

	r.GET("/remove/:id/", cartControllers.RemoveFromCart(db))
	r.POST("/remove/:id/", cartControllers.RemoveFromCart(db))
}
