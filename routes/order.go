package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/sudipta-bhowmick/plant-nursery-api/controllers/order"
	"github.com/sudipta-bhowmick/plant-nursery-api/middleware"
)

// SetupOrderRoutes registers checkout and order-history endpoints; all
// of them require a logged-in user.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/")
	orders.Use(middleware.RequireLogin)
	{
		orders.GET("/checkout/", orderControllers.CheckoutSummary(db))
		orders.POST("/checkout/", orderControllers.Checkout(db))

		orders.GET("/payment/:order_id/", orderControllers.PaymentPage(db))
		orders.POST("/payment/:order_id/", orderControllers.ConfirmPayment(db))

		orders.GET("/order-success/:order_id/", orderControllers.OrderSuccess(db))

		orders.GET("/my-orders/", orderControllers.MyOrders(db))
		orders.GET("/order/:order_id/", orderControllers.OrderDetail(db))
	}
}
