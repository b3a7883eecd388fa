// Package checkout turns a session cart into a placed order.
package checkout

import (
	"net/url"
	"strings"
	"time"

	"github.com/greenbean/storefront/internal/cart"
	"github.com/greenbean/storefront/internal/domain"
	"github.com/greenbean/storefront/internal/orders"
	"github.com/greenbean/storefront/internal/pricing"
)

const DefaultCountry = "United States"

// Request customer input of a checkout
type Request struct {
	Customer      domain.CustomerInfo
	PaymentMethod string
}

type Service struct {
	rules          pricing.Rules
	ids            IDGenerator
	defaultCountry string
	now            func() time.Time
}

type Option func(*Service)

// WithClock overrides the order timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithDefaultCountry(country string) Option {
	return func(s *Service) {
		if country != "" {
			s.defaultCountry = country
		}
	}
}

func NewService(rules pricing.Rules, ids IDGenerator, opts ...Option) *Service {
	s := &Service{
		rules:          rules,
		ids:            ids,
		defaultCountry: DefaultCountry,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview prices the cart without placing an order
func (s *Service) Preview(c *cart.Cart) (domain.OrderSummary, error) {
	if c.IsEmpty() {
		return domain.OrderSummary{}, ErrEmptyCart
	}
	return s.rules.Calculate(c.Items()), nil
}

// Place creates an order from the cart, appends it to the history and clears the cart.
// Nothing is changed when it returns an error.
func (s *Service) Place(c *cart.Cart, history *orders.History, req Request) (*domain.Order, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	items := c.Items()
	now := s.now()

	customer := req.Customer
	customer.ShippingAddress.Country = strings.TrimSpace(customer.ShippingAddress.Country)
	if customer.ShippingAddress.Country == "" {
		customer.ShippingAddress.Country = s.defaultCountry
	}
	payment := strings.TrimSpace(req.PaymentMethod)
	if payment == "" {
		payment = domain.PaymentCreditCard
	}

	order := domain.Order{
		OrderID:       s.ids.NextID(now),
		CustomerInfo:  customer,
		Items:         items,
		OrderSummary:  s.rules.Calculate(items),
		OrderDate:     now,
		Status:        domain.OrderStatusConfirmed,
		PaymentMethod: payment,
	}
	history.Append(order)
	c.Clear()
	return &order, nil
}

// ConfirmationURL page showing a placed order
func ConfirmationURL(orderID string) string {
	return "/order-confirmation/" + url.PathEscape(orderID)
}
