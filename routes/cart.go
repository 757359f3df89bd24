package routes

import (
	"github.com/drkhamzat/bizon/cart"
	cartControllers "github.com/drkhamzat/bizon/controllers/cart"
	"github.com/drkhamzat/bizon/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints. Carts work for both
// authenticated users and guests carrying an X-Cart-Session header.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB, carts *cart.Manager) {
	group := api.Group("/cart")
	group.Use(middleware.OptionalAuth(db))
	{
		group.GET("", cartControllers.GetCartHandler(carts))
		group.POST("", cartControllers.AddItemHandler(db, carts))
		group.PUT("/:productId", cartControllers.UpdateQuantityHandler(carts))
		group.DELETE("/:productId", cartControllers.RemoveItemHandler(carts))
		group.DELETE("", cartControllers.ClearCartHandler(carts))
	}
}
