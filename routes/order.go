package routes

import (
	orderControllers "github.com/drkhamzat/bizon/controllers/order"
	"github.com/drkhamzat/bizon/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers all "/api/orders/*" endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/orders")
	{
		// Guest checkout is allowed, so order creation only resolves the
		// user when a token is present.
		orders.POST("", middleware.OptionalAuth(db), orderControllers.CreateOrderHandler(db))

		authed := orders.Group("")
		authed.Use(middleware.RequireAuth(db))
		{
			authed.GET("/myorders", orderControllers.GetMyOrdersHandler(db))
			authed.GET("/:id", orderControllers.GetOrderHandler(db))
		}

		admin := orders.Group("")
		admin.Use(middleware.RequireAuth(db), middleware.RequireAdmin())
		{
			admin.GET("", orderControllers.GetAllOrdersHandler(db))
			admin.PUT("/:id/status", orderControllers.UpdateOrderStatusHandler(db))
			admin.DELETE("/:id", orderControllers.DeleteOrderHandler(db))

			// websocket feed for the admin dashboard; the bearer token is
			// checked on the upgrade request like on any other admin route
			admin.GET("/ws", orderControllers.OrderWebSocketHandler)
		}
	}
}
