package productcontroller

import (
	"net/http"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Price       float64           `json:"price" binding:"required,gt=0"`
	Discount    float64           `json:"discount" binding:"gte=0,lte=100"`
	Images      []string          `json:"images" binding:"required,min=1"`
	CategoryID  *uint             `json:"category_id"`
	InStock     *bool             `json:"in_stock"`
	Dimensions  models.Dimensions `json:"dimensions"`
	Material    string            `json:"material" binding:"required"`
	Color       string            `json:"color"`
	Weight      float64           `json:"weight"`
	Featured    bool              `json:"featured"`
}

// CreateProduct persists a product with a freshly derived unique slug.
func CreateProduct(db *gorm.DB, input ProductInput) (*models.Product, error) {
	if input.CategoryID != nil {
		var count int64
		if err := db.Model(&models.Category{}).Where("id = ?", *input.CategoryID).Count(&count).Error; err != nil {
			return nil, httpapi.Persistence(err)
		}
		if count == 0 {
			return nil, httpapi.Validation("category does not exist")
		}
	}

	slug, err := models.UniqueSlug(db, "products", input.Name, 0)
	if err != nil {
		return nil, httpapi.Persistence(err)
	}

	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}

	product := models.Product{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
		Images:      input.Images,
		CategoryID:  input.CategoryID,
		InStock:     inStock,
		Dimensions:  input.Dimensions,
		Material:    input.Material,
		Color:       input.Color,
		Weight:      input.Weight,
		Featured:    input.Featured,
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, httpapi.Persistence(err)
	}
	return &product, nil
}

// POST /api/products (admin)
func CreateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}
		product, err := CreateProduct(db, input)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		httpapi.OK(c, http.StatusCreated, product)
	}
}
