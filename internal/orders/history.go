// Package orders keeps the order history of a session.
package orders

import "github.com/greenbean/storefront/internal/domain"

// History completed orders of one session, oldest first
type History struct {
	Orders []domain.Order `json:"orders"`
	dirty  bool
}

// NewHistory wraps existing orders
func NewHistory(orders []domain.Order) *History {
	if orders == nil {
		orders = []domain.Order{}
	}
	return &History{Orders: orders}
}

// Append adds an order to the end of the history
func (h *History) Append(order domain.Order) {
	h.Orders = append(h.Orders, order)
	h.dirty = true
}

// FindByID returns the first order with the given id
func (h *History) FindByID(orderID string) (domain.Order, bool) {
	for _, o := range h.Orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return domain.Order{}, false
}

// All returns the orders in insertion order
func (h *History) All() []domain.Order {
	out := make([]domain.Order, len(h.Orders))
	copy(out, h.Orders)
	return out
}

// Recent returns the orders newest first
func (h *History) Recent() []domain.Order {
	out := make([]domain.Order, 0, len(h.Orders))
	for i := len(h.Orders) - 1; i >= 0; i-- {
		out = append(out, h.Orders[i])
	}
	return out
}

func (h *History) Len() int {
	return len(h.Orders)
}

func (h *History) Dirty() bool {
	return h.dirty
}
