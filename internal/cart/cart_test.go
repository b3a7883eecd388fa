package cart

import (
	"testing"

	"github.com/greenbean/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id int64, price string, qty int) domain.CartLineItem {
	return domain.CartLineItem{ProductID: id, Name: "item", Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestCart_AddKeepsDuplicatesAsSeparateLines(t *testing.T) {
	c := New(nil)
	assert.False(t, c.Dirty())

	c.Add(line(1, "25.99", 1))
	c.Add(line(1, "25.99", 2))

	require.Equal(t, 2, c.Len())
	assert.True(t, c.Dirty())
	assert.Equal(t, 2, c.Items()[1].Quantity)
}

func TestCart_AddDefaultsQuantity(t *testing.T) {
	c := New(nil)
	c.Add(domain.CartLineItem{ProductID: 3, Name: "Peace Lily"})

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.True(t, items[0].Price.IsZero())
}

func TestCart_RemoveAllMatching(t *testing.T) {
	c := New([]domain.CartLineItem{line(1, "10", 1), line(2, "5", 1), line(1, "10", 3)})

	removed := c.Remove(1)

	assert.Equal(t, 2, removed)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, int64(2), c.Items()[0].ProductID)
	assert.True(t, c.Dirty())
}

func TestCart_RemoveMissingIsNoop(t *testing.T) {
	c := New([]domain.CartLineItem{line(1, "10", 1)})
	assert.Equal(t, 0, c.Remove(99))
	assert.Equal(t, 1, c.Len())
}

func TestCart_SyncReplacesAndDropsZeroQuantity(t *testing.T) {
	c := New([]domain.CartLineItem{line(1, "10", 1)})

	c.Sync([]domain.CartLineItem{line(5, "3", 2), line(6, "4", 0), line(7, "1", -1)})

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].ProductID)
}

func TestCart_ItemsIsACopy(t *testing.T) {
	c := New([]domain.CartLineItem{line(1, "10", 1)})
	items := c.Items()
	items[0].Quantity = 50

	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestCart_TotalAndClear(t *testing.T) {
	c := New([]domain.CartLineItem{line(1, "10", 2), line(2, "0.5", 3)})
	assert.True(t, decimal.RequireFromString("21.5").Equal(c.Total()))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
	assert.NotNil(t, c.Items())
}
