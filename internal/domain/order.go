package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusConfirmed = "confirmed"

	PaymentCreditCard = "credit_card"
)

// OrderSummary derived totals of an order
type OrderSummary struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Total        decimal.Decimal `json:"total"`
	ItemsCount   int             `json:"items_count"`
}

// Address shipping address
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// CustomerInfo buyer details captured at checkout
type CustomerInfo struct {
	FirstName             string  `json:"first_name"`
	LastName              string  `json:"last_name"`
	Email                 string  `json:"email"`
	Phone                 string  `json:"phone"`
	ShippingAddress       Address `json:"shipping_address"`
	BillingSameAsShipping bool    `json:"billing_same_as_shipping"`
}

// FullName first and last name joined
func (c CustomerInfo) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// Order a placed order. Items and Summary are a snapshot taken at checkout.
type Order struct {
	OrderID       string         `json:"order_id"`
	CustomerInfo  CustomerInfo   `json:"customer_info"`
	Items         []CartLineItem `json:"items"`
	OrderSummary  OrderSummary   `json:"order_summary"`
	OrderDate     time.Time      `json:"order_date"`
	Status        string         `json:"status"`
	PaymentMethod string         `json:"payment_method"`
}
