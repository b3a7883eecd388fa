package checkout

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/greenbean/storefront/internal/cart"
	"github.com/greenbean/storefront/internal/domain"
	"github.com/greenbean/storefront/internal/orders"
	"github.com/greenbean/storefront/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(pricing.DefaultRules(), NewLegacyGenerator("GB"), WithClock(func() time.Time { return fixedNow }))
}

func filledCart() *cart.Cart {
	return cart.New([]domain.CartLineItem{
		{ProductID: 1, Name: "Monstera Deliciosa", Price: decimal.RequireFromString("30"), Quantity: 1},
		{ProductID: 2, Name: "Snake Plant", Price: decimal.RequireFromString("25"), Quantity: 1},
	})
}

func TestPlace_CreatesOrderAndClearsCart(t *testing.T) {
	s := newService(t)
	c := filledCart()
	h := orders.NewHistory(nil)

	order, err := s.Place(c, h, Request{Customer: domain.CustomerInfo{FirstName: "Ada", Email: "ada@example.com"}})
	require.NoError(t, err)

	assert.Equal(t, "GB20240309140507", order.OrderID)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.Equal(t, domain.PaymentCreditCard, order.PaymentMethod)
	assert.Equal(t, DefaultCountry, order.CustomerInfo.ShippingAddress.Country)
	assert.True(t, decimal.RequireFromString("59.40").Equal(order.OrderSummary.Total))
	assert.Equal(t, fixedNow, order.OrderDate)

	assert.True(t, c.IsEmpty())
	assert.True(t, c.Dirty())
	require.Equal(t, 1, h.Len())
	stored, ok := h.FindByID(order.OrderID)
	require.True(t, ok)
	assert.Len(t, stored.Items, 2)
}

func TestPlace_EmptyCart(t *testing.T) {
	s := newService(t)
	c := cart.New(nil)
	h := orders.NewHistory(nil)

	order, err := s.Place(c, h, Request{})

	assert.Nil(t, order)
	assert.True(t, errors.Is(err, ErrEmptyCart))
	assert.Equal(t, 0, h.Len())
	assert.False(t, c.Dirty())
}

func TestPlace_SnapshotIsIndependentOfCart(t *testing.T) {
	s := newService(t)
	c := filledCart()
	h := orders.NewHistory(nil)

	order, err := s.Place(c, h, Request{})
	require.NoError(t, err)

	c.Add(domain.CartLineItem{ProductID: 9, Name: "Pot", Price: decimal.NewFromInt(100), Quantity: 4})
	c.Sync([]domain.CartLineItem{{ProductID: 1, Name: "x", Price: decimal.NewFromInt(1), Quantity: 9}})

	stored, ok := h.FindByID(order.OrderID)
	require.True(t, ok)
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, "Monstera Deliciosa", stored.Items[0].Name)
	assert.Equal(t, 2, stored.OrderSummary.ItemsCount)
}

func TestPlace_KeepsExplicitCustomerChoices(t *testing.T) {
	s := NewService(pricing.DefaultRules(), NewLegacyGenerator("GB"), WithDefaultCountry("Canada"))
	h := orders.NewHistory(nil)

	order, err := s.Place(filledCart(), h, Request{PaymentMethod: "paypal"})
	require.NoError(t, err)
	assert.Equal(t, "paypal", order.PaymentMethod)
	assert.Equal(t, "Canada", order.CustomerInfo.ShippingAddress.Country)

	order, err = s.Place(filledCart(), h, Request{Customer: domain.CustomerInfo{ShippingAddress: domain.Address{Country: "Mexico"}}})
	require.NoError(t, err)
	assert.Equal(t, "Mexico", order.CustomerInfo.ShippingAddress.Country)
}

func TestPreview(t *testing.T) {
	s := newService(t)

	summary, err := s.Preview(filledCart())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("55").Equal(summary.Subtotal))

	_, err = s.Preview(cart.New(nil))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSnowflakeGenerator_Unique(t *testing.T) {
	g, err := NewSnowflakeGenerator("GB", 1)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := g.NextID(fixedNow)
		require.True(t, strings.HasPrefix(id, "GB"))
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewIDGenerator(t *testing.T) {
	g, err := NewIDGenerator("legacy", "GB", 0)
	require.NoError(t, err)
	assert.Equal(t, "GB20240309140507", g.NextID(fixedNow))

	g, err = NewIDGenerator("", "GB", 0)
	require.NoError(t, err)
	assert.IsType(t, &SnowflakeGenerator{}, g)

	_, err = NewIDGenerator("uuid", "GB", 0)
	assert.Error(t, err)

	_, err = NewIDGenerator("snowflake", "GB", 5000)
	assert.Error(t, err)
}

func TestConfirmationURL(t *testing.T) {
	assert.Equal(t, "/order-confirmation/GB20240309140507", ConfirmationURL("GB20240309140507"))
}
