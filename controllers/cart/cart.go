package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/drkhamzat/bizon/cart"
	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/middleware"
	"github.com/drkhamzat/bizon/models"
	"github.com/drkhamzat/bizon/pricing"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// sessionKey resolves the cart owner: the authenticated user id, or the
// storefront-generated session id for guests.
func sessionKey(c *gin.Context) (string, error) {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID, nil
	}
	if session := c.GetHeader("X-Cart-Session"); session != "" {
		return session, nil
	}
	return "", httpapi.Validation("X-Cart-Session header is required for guest carts")
}

// GET /api/cart
func GetCartHandler(m *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessionKey(c)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		current, err := m.Get(c.Request.Context(), session)
		if err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, current)
	}
}

// POST /api/cart — the product is looked up once here so the cart line
// carries a price snapshot taken at add time. Discounted products are
// charged the discounted price.
func AddItemHandler(db *gorm.DB, m *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessionKey(c)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}

		var product models.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpapi.Fail(c, httpapi.NotFound("product not found"))
				return
			}
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		item := cart.Item{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     pricing.DiscountedPrice(product.Price, product.Discount),
			Image:     image,
			Quantity:  req.Quantity,
		}

		next, err := m.Add(c.Request.Context(), session, item)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		httpapi.OK(c, http.StatusOK, next)
	}
}

// PUT /api/cart/:productId
func UpdateQuantityHandler(m *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessionKey(c)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid product id"))
			return
		}
		var req UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}
		next, err := m.UpdateQuantity(c.Request.Context(), session, uint(productID), req.Quantity)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		httpapi.OK(c, http.StatusOK, next)
	}
}

// DELETE /api/cart/:productId
func RemoveItemHandler(m *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessionKey(c)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid product id"))
			return
		}
		next, err := m.Remove(c.Request.Context(), session, uint(productID))
		if err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, next)
	}
}

// DELETE /api/cart
func ClearCartHandler(m *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessionKey(c)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		if err := m.Clear(c.Request.Context(), session); err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
