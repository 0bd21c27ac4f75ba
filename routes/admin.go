package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sudipta-bhowmick/plant-nursery-api/auth"
	catalogControllers "github.com/sudipta-bhowmick/plant-nursery-api/controllers/catalog"
	orderControllers "github.com/sudipta-bhowmick/plant-nursery-api/controllers/order"
	"github.com/sudipta-bhowmick/plant-nursery-api/middleware"
)

// SetupAdminRoutes registers the admin login and the protected admin
// surface: catalog management and order status progression.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/auth/admin", auth.AdminLogin())

	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAdmin)
	{
		admin.POST("/categories", catalogControllers.CreateCategory(db))
		admin.POST("/plants", catalogControllers.CreatePlant(db))

		admin.GET("/orders", orderControllers.GetAllOrders(db))
		admin.PUT("/orders/:order_id/status", orderControllers.UpdateOrderStatus(db))
	}
}
