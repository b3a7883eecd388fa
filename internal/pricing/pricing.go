// Package pricing computes order totals from cart line items.
package pricing

import (
	"github.com/greenbean/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Rules holds the shipping and tax parameters of the shop
type Rules struct {
	FreeShippingThreshold decimal.Decimal // subtotal at or above ships free
	FlatShipping          decimal.Decimal
	TaxRate               decimal.Decimal // applied to the subtotal only
}

// DefaultRules free shipping from 50.00, otherwise 9.99 flat, 8% tax
func DefaultRules() Rules {
	return Rules{
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShipping:          decimal.RequireFromString("9.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// NewRules builds rules from configuration values
func NewRules(threshold, flat, taxRate float64) Rules {
	return Rules{
		FreeShippingThreshold: decimal.NewFromFloat(threshold),
		FlatShipping:          decimal.NewFromFloat(flat),
		TaxRate:               decimal.NewFromFloat(taxRate),
	}
}

// Subtotal sum of price x quantity
func Subtotal(items []domain.CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemsCount sum of quantities
func ItemsCount(items []domain.CartLineItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// Shipping returns the shipping cost for a subtotal
func (r Rules) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(r.FreeShippingThreshold) {
		return decimal.Zero
	}
	return r.FlatShipping
}

// Tax returns the tax on a subtotal, rounded to cents
func (r Rules) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(r.TaxRate).Round(2)
}

// Calculate prices the given items. It has no side effects.
func (r Rules) Calculate(items []domain.CartLineItem) domain.OrderSummary {
	subtotal := Subtotal(items)
	shipping := r.Shipping(subtotal)
	tax := r.Tax(subtotal)
	return domain.OrderSummary{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		TaxAmount:    tax,
		Total:        subtotal.Add(shipping).Add(tax),
		ItemsCount:   ItemsCount(items),
	}
}

// Calculate prices items with the default rules
func Calculate(items []domain.CartLineItem) domain.OrderSummary {
	return DefaultRules().Calculate(items)
}
