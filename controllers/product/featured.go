package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "8"))
	if err != nil || limit < 1 {
		limit = 8
	}
	return limit
}

// GET /api/products/featured
func GetFeaturedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").
			Where("featured = ?", true).
			Limit(limitParam(c)).
			Find(&products).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, products)
	}
}

// GET /api/products/discounted
func GetDiscountedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").
			Where("discount > 0").
			Limit(limitParam(c)).
			Find(&products).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, products)
	}
}
