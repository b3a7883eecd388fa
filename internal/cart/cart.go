// Package cart holds the per-session shopping cart.
package cart

import (
	"github.com/greenbean/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Cart line items of one session, in insertion order.
// Every mutation marks the cart dirty so the boundary knows to persist the session.
type Cart struct {
	Lines []domain.CartLineItem `json:"lines"`
	dirty bool
}

// New returns a cart holding a copy of items
func New(items []domain.CartLineItem) *Cart {
	return &Cart{Lines: keepPositive(items)}
}

// Add appends a line. Repeated adds of one product create separate lines.
// A quantity below 1 is treated as 1.
func (c *Cart) Add(item domain.CartLineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	c.Lines = append(c.Lines, item)
	c.dirty = true
}

// Remove drops every line with the given product id and returns how many were removed
func (c *Cart) Remove(productID int64) int {
	kept := c.Lines[:0]
	removed := 0
	for _, line := range c.Lines {
		if line.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	c.Lines = kept
	c.dirty = true
	return removed
}

// Sync replaces the cart contents. Lines with quantity below 1 are dropped.
func (c *Cart) Sync(items []domain.CartLineItem) {
	c.Lines = keepPositive(items)
	c.dirty = true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = []domain.CartLineItem{}
	c.dirty = true
}

// Items returns a copy of the current lines
func (c *Cart) Items() []domain.CartLineItem {
	return domain.CloneItems(c.Lines)
}

func (c *Cart) Len() int {
	return len(c.Lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total sum of line totals, shown on the cart page
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Dirty reports whether the cart changed since it was loaded
func (c *Cart) Dirty() bool {
	return c.dirty
}

func keepPositive(items []domain.CartLineItem) []domain.CartLineItem {
	out := make([]domain.CartLineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		out = append(out, item)
	}
	return out
}
