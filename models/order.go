package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusProcessing OrderStatus = "processing" // Being assembled in the warehouse
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the order
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before completion
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

type DeliveryMethod string

const (
	DeliveryCourier DeliveryMethod = "courier"
	DeliveryPickup  DeliveryMethod = "pickup"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// Legacy Russian status vocabulary still used by older storefront clients.
var legacyStatuses = map[string]OrderStatus{
	"новый":     OrderStatusPending,
	"обработка": OrderStatusProcessing,
	"доставка":  OrderStatusShipped,
	"завершен":  OrderStatusDelivered,
	"отменен":   OrderStatusCancelled,
}

// ParseOrderStatus normalizes a status string (canonical or legacy) to the
// canonical enum.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return st, nil
	}
	if st, ok := legacyStatuses[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", ErrInvalidOrderStatus
}

// transitions is the closed table of legal status changes. Delivered and
// cancelled are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool { return len(transitions[s]) == 0 }

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          *string         `json:"user_id"` // nil for guest orders
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	PaymentMethod   PaymentMethod   `gorm:"type:VARCHAR(20)" json:"payment_method"`
	DeliveryMethod  DeliveryMethod  `gorm:"type:VARCHAR(20)" json:"delivery_method"`
	ItemsPrice      float64         `json:"items_price"`
	ShippingPrice   float64         `json:"shipping_price"`
	TotalPrice      float64         `json:"total_price"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	IsPaid          bool            `json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	Comment         string          `json:"comment,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ShippingAddress is copied into the order at submission time; it never tracks
// later changes to the user's profile address.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

// OrderItem is a full snapshot of the product line at checkout; price and name
// are never re-read from the products table.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}
