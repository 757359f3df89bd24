package routes

import (
	productcontroller "github.com/drkhamzat/bizon/controllers/product"
	"github.com/drkhamzat/bizon/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCategoryRoutes registers all "/api/categories/*" endpoints.
func SetupCategoryRoutes(api *gin.RouterGroup, db *gorm.DB) {
	categories := api.Group("/categories")
	{
		categories.GET("", productcontroller.GetAllCategories(db))
		categories.GET("/:idOrSlug", productcontroller.GetCategoryHandler(db))

		admin := categories.Group("")
		admin.Use(middleware.RequireAuth(db), middleware.RequireAdmin())
		{
			admin.POST("", productcontroller.CreateCategory(db))
			admin.PUT("/:id", productcontroller.UpdateCategory(db))
			admin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}
	}
}
