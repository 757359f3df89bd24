package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/middleware"
	"github.com/drkhamzat/bizon/models"
	"github.com/drkhamzat/bizon/pricing"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required"`
	Image     string  `json:"image"`
}

type ShippingAddressInput struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

type CreateOrderRequest struct {
	OrderItems      []OrderItemInput     `json:"order_items"`
	ShippingAddress ShippingAddressInput `json:"shipping_address"`
	PaymentMethod   string               `json:"payment_method"`
	DeliveryMethod  string               `json:"delivery_method"`
	Comment         string               `json:"comment"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Free shipping is a storefront-wide business rule for now.
const shippingPrice = 0.0

// -------- Core Logic --------

// CreateOrder validates the submitted cart snapshot and persists the order in
// a single insert. Line prices are taken from the request as-is: they were
// snapshotted when the items went into the cart, and re-fetching current
// catalog prices here would corrupt the total the customer already saw.
func CreateOrder(db *gorm.DB, req CreateOrderRequest, user *models.User) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, httpapi.Validation("order must contain at least one item")
	}
	for _, item := range req.OrderItems {
		if item.Quantity < 1 {
			return nil, httpapi.Validation("item quantity must be at least 1")
		}
	}
	if req.ShippingAddress.FullName == "" || req.ShippingAddress.Address == "" ||
		req.ShippingAddress.City == "" || req.ShippingAddress.Phone == "" {
		return nil, httpapi.Validation("shipping address requires full name, address, city and phone")
	}

	payment := models.PaymentMethod(req.PaymentMethod)
	if payment != models.PaymentCard && payment != models.PaymentCash {
		return nil, httpapi.Validation("payment method must be card or cash")
	}
	delivery := models.DeliveryMethod(req.DeliveryMethod)
	if delivery != models.DeliveryCourier && delivery != models.DeliveryPickup {
		return nil, httpapi.Validation("delivery method must be courier or pickup")
	}

	lines := make([]pricing.Line, 0, len(req.OrderItems))
	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		lines = append(lines, pricing.Line{Price: item.Price, Quantity: item.Quantity})
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	itemsPrice := pricing.ItemsTotal(lines)

	order := models.Order{
		Items: items,
		ShippingAddress: models.ShippingAddress{
			FullName:   req.ShippingAddress.FullName,
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Phone:      req.ShippingAddress.Phone,
		},
		PaymentMethod:  payment,
		DeliveryMethod: delivery,
		ItemsPrice:     itemsPrice,
		ShippingPrice:  shippingPrice,
		TotalPrice:     pricing.Total(itemsPrice, shippingPrice),
		Status:         models.OrderStatusPending,
		Comment:        req.Comment,
		CreatedAt:      time.Now(),
	}
	if user != nil {
		order.UserID = &user.ID
	}

	if err := db.Create(&order).Error; err != nil {
		return nil, httpapi.Persistence(err)
	}
	return &order, nil
}

// GetOrder loads an order and checks that the actor may see it: the order's
// owner or an admin.
func GetOrder(db *gorm.DB, id uint, actor *models.User) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpapi.NotFound("order not found")
		}
		return nil, httpapi.Persistence(err)
	}
	if actor == nil || (!actor.IsAdmin() && (order.UserID == nil || *order.UserID != actor.ID)) {
		return nil, httpapi.Authorization("you cannot view this order")
	}
	return &order, nil
}

// SetStatus transitions an order along the status table. Reaching delivered
// marks the order paid and stamps the paid time once.
func SetStatus(db *gorm.DB, id uint, newStatus models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpapi.NotFound("order not found")
		}
		return nil, httpapi.Persistence(err)
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, httpapi.InvalidTransition(
			"cannot change order status from " + string(order.Status) + " to " + string(newStatus))
	}

	updates := map[string]interface{}{"status": newStatus}
	if newStatus == models.OrderStatusDelivered && !order.IsPaid {
		now := time.Now()
		updates["is_paid"] = true
		updates["paid_at"] = &now
		order.IsPaid = true
		order.PaidAt = &now
	}
	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return nil, httpapi.Persistence(err)
	}
	order.Status = newStatus
	return &order, nil
}

// -------- Handlers --------

// POST /api/orders — guest checkout allowed, so auth is optional.
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}
		order, err := CreateOrder(db, req, middleware.CurrentUser(c))
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		broadcastOrderEvent("order_created", order)
		httpapi.OK(c, http.StatusCreated, order)
	}
}

// GET /api/orders/myorders
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		var orders []models.Order
		if err := db.
			Where("user_id = ?", user.ID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, orders)
	}
}

// GET /api/orders/:id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid order id"))
			return
		}
		order, err := GetOrder(db, uint(id), middleware.CurrentUser(c))
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		httpapi.OK(c, http.StatusOK, order)
	}
}

// GET /api/orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		httpapi.OK(c, http.StatusOK, orders)
	}
}

// PUT /api/orders/:id/status (admin)
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid order id"))
			return
		}
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid input: "+err.Error()))
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			httpapi.Fail(c, httpapi.Validation("unknown order status: "+req.Status))
			return
		}
		order, err := SetStatus(db, uint(id), newStatus)
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		broadcastOrderEvent("status_changed", order)
		httpapi.OK(c, http.StatusOK, order)
	}
}

// DELETE /api/orders/:id (admin)
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			httpapi.Fail(c, httpapi.Validation("invalid order id"))
			return
		}
		var deleted bool
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", uint(id)).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			result := tx.Delete(&models.Order{}, uint(id))
			if result.Error != nil {
				return result.Error
			}
			deleted = result.RowsAffected > 0
			return nil
		})
		if err != nil {
			httpapi.Fail(c, httpapi.Persistence(err))
			return
		}
		if !deleted {
			httpapi.Fail(c, httpapi.NotFound("order not found"))
			return
		}
		httpapi.OK(c, http.StatusOK, gin.H{"message": "order deleted"})
	}
}
