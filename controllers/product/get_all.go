package productcontroller

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProductFilter holds the recognized catalog query parameters. Empty or
// unparseable values are ignored rather than rejected.
type ProductFilter struct {
	CategoryID uint
	MinPrice   *float64
	MaxPrice   *float64
	Material   string
	InStock    *bool
	Search     string
	Sort       string
	Order      string
	Page       int
	Limit      int
}

// ProductPage is the paginated listing envelope.
type ProductPage struct {
	Items       []models.Product `json:"items"`
	TotalCount  int64            `json:"total_count"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
}

// Sortable columns; anything else falls back to created_at.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"name":      "name",
}

// ListProducts filters, sorts and paginates the catalog.
func ListProducts(db *gorm.DB, f ProductFilter) (*ProductPage, error) {
	query := db.Model(&models.Product{}).Preload("Category")

	if f.CategoryID != 0 {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.Material != "" {
		query = query.Where("material = ?", f.Material)
	}
	if f.InStock != nil {
		query = query.Where("in_stock = ?", *f.InStock)
	}
	if f.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, httpapi.Persistence(err)
	}

	column, ok := sortColumns[f.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "desc"
	if strings.ToLower(f.Order) == "asc" {
		direction = "asc"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 12
	}

	var products []models.Product
	if err := query.
		Order(column + " " + direction).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, httpapi.Persistence(err)
	}
	if products == nil {
		products = []models.Product{}
	}

	return &ProductPage{
		Items:       products,
		TotalCount:  total,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}, nil
}

// GET /api/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := ProductFilter{
			Material: c.Query("material"),
			Search:   c.Query("search"),
			Sort:     c.DefaultQuery("sort", "createdAt"),
			Order:    c.DefaultQuery("order", "desc"),
		}
		if cid, err := strconv.ParseUint(c.Query("category"), 10, 64); err == nil {
			f.CategoryID = uint(cid)
		}
		if mp, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
			f.MinPrice = &mp
		}
		if mp, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
			f.MaxPrice = &mp
		}
		if is, err := strconv.ParseBool(c.Query("inStock")); err == nil {
			f.InStock = &is
		}
		f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "12"))

		page, err := ListProducts(db, f)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		httpapi.OK(c, http.StatusOK, page)
	}
}
