package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProduct resolves an all-digit identifier as a primary key and anything
// else as a slug.
func GetProduct(db *gorm.DB, idOrSlug string) (*models.Product, error) {
	query := db.Preload("Category")

	var product models.Product
	var err error
	if id, convErr := strconv.ParseUint(idOrSlug, 10, 64); convErr == nil {
		err = query.First(&product, uint(id)).Error
	} else {
		err = query.Where("slug = ?", idOrSlug).First(&product).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpapi.NotFound("product not found")
		}
		return nil, httpapi.Persistence(err)
	}
	return &product, nil
}

// GET /api/products/:idOrSlug
func GetProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := GetProduct(db, c.Param("idOrSlug"))
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		httpapi.OK(c, http.StatusOK, product)
	}
}
