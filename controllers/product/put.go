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

type UpdateProductInput struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Price       *float64           `json:"price" binding:"omitempty,gt=0"`
	Discount    *float64           `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Images      []string           `json:"images"`
	CategoryID  *uint              `json:"category_id"`
	InStock     *bool              `json:"in_stock"`
	Dimensions  *models.Dimensions `json:"dimensions"`
	Material    *string            `json:"material"`
	Color       *string            `json:"color"`
	Weight      *float64           `json:"weight"`
	Featured    *bool              `json:"featured"`
}

// UpdateProduct applies a partial update. A name change re-derives the slug.
func UpdateProduct(db *gorm.DB, id uint, input UpdateProductInput) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpapi.NotFound("product not found")
		}
		return nil, httpapi.Persistence(err)
	}

	if input.Name != nil && *input.Name != product.Name {
		slug, err := models.UniqueSlug(db, "products", *input.Name, product.ID)
		if err != nil {
			return nil, httpapi.Persistence(err)
		}
		product.Name = *input.Name
		product.Slug = slug
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Discount != nil {
		product.Discount = *input.Discount
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.CategoryID != nil {
		var count int64
		if err := db.Model(&models.Category{}).Where("id = ?", *input.CategoryID).Count(&count).Error; err != nil {
			return nil, httpapi.Persistence(err)
		}
		if count == 0 {
			return nil, httpapi.Validation("category does not exist")
		}
		product.CategoryID = input.CategoryID
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Dimensions != nil {
		product.Dimensions = *input.Dimensions
	}
	if input.Material != nil {
		product.Material = *input.Material
	}
	if input.Color != nil {
		product.Color = *input.Color
	}
	if input.Weight != nil {
		product.Weight = *input.Weight
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := db.Save(&product).Error; err != nil {
		return nil, httpapi.Persistence(err)
	}
	return &product, nil
}

// PUT /api/products/:id (admin)
func UpdateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid product id"))
			return
		}
		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}
		product, err := UpdateProduct(db, uint(id), input)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		httpapi.OK(c, http.StatusOK, product)
	}
}
