package routes

import (
	productcontroller "github.com/drkhamzat/bizon/controllers/product"
	"github.com/drkhamzat/bizon/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupProductRoutes registers all "/api/products/*" endpoints. Fixed paths
// must be declared before the :idOrSlug wildcard.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/featured", productcontroller.GetFeaturedProducts(db))
		products.GET("/discounted", productcontroller.GetDiscountedProducts(db))

		admin := products.Group("")
		admin.Use(middleware.RequireAuth(db), middleware.RequireAdmin())
		{
			admin.POST("", productcontroller.CreateProductHandler(db))
			admin.PUT("/:id", productcontroller.UpdateProductHandler(db))
			admin.DELETE("/:id", productcontroller.DeleteProductHandler(db))
			admin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		products.GET("/:idOrSlug", productcontroller.GetProductHandler(db))
	}
}
