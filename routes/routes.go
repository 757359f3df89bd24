package routes

import (
	"github.com/drkhamzat/bizon/cart"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all /api route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Manager) {
	api := r.Group("/api")

	SetupAuthRoutes(api, db)
	SetupProductRoutes(api, db)
	SetupCategoryRoutes(api, db)
	SetupOrderRoutes(api, db)
	SetupCartRoutes(api, db, carts)
	SetupUserRoutes(api, db)
}
