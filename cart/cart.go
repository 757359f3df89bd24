// Package cart implements the session cart: a serializable value type mutated
// by pure reducer-style operations, persisted through a Store after every
// successful mutation. The server never shares a cart between sessions, so no
// locking is needed beyond the store's own per-key atomicity.
package cart

import "github.com/drkhamzat/bizon/httpapi"

// Item is a product line inside a cart. Price is a snapshot taken when the
// item was added; it is intentionally NOT refreshed from the catalog.
type Item struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Cart is a plain value; all operations return the next state instead of
// mutating shared memory.
type Cart struct {
	Items []Item `json:"items"`
}

// Add merges an item into the cart. An existing line with the same product id
// gets its quantity incremented by the incoming quantity; otherwise the item
// is appended.
func Add(c Cart, item Item) (Cart, error) {
	if item.Quantity < 1 {
		return c, httpapi.Validation("quantity must be at least 1")
	}
	next := Cart{Items: make([]Item, len(c.Items))}
	copy(next.Items, c.Items)
	for i := range next.Items {
		if next.Items[i].ProductID == item.ProductID {
			next.Items[i].Quantity += item.Quantity
			return next, nil
		}
	}
	next.Items = append(next.Items, item)
	return next, nil
}

// UpdateQuantity sets the quantity of an existing line. A missing product id
// is a no-op. Zero or negative quantities are rejected; use Remove instead.
func UpdateQuantity(c Cart, productID uint, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, httpapi.Validation("quantity must be at least 1")
	}
	next := Cart{Items: make([]Item, len(c.Items))}
	copy(next.Items, c.Items)
	for i := range next.Items {
		if next.Items[i].ProductID == productID {
			next.Items[i].Quantity = quantity
			break
		}
	}
	return next, nil
}

// Remove drops the line with the given product id. Removing an absent id is
// not an error.
func Remove(c Cart, productID uint) Cart {
	next := Cart{}
	for _, it := range c.Items {
		if it.ProductID != productID {
			next.Items = append(next.Items, it)
		}
	}
	return next
}

// Clear returns an empty cart.
func Clear(Cart) Cart { return Cart{} }
