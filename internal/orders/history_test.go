package orders

import (
	"testing"
	"time"

	"github.com/greenbean/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id string) domain.Order {
	return domain.Order{OrderID: id, Status: domain.OrderStatusConfirmed, OrderDate: time.Now()}
}

func TestHistory_AppendAndFind(t *testing.T) {
	h := NewHistory(nil)
	assert.False(t, h.Dirty())

	h.Append(order("GB1"))
	h.Append(order("GB2"))

	assert.True(t, h.Dirty())
	assert.Equal(t, 2, h.Len())

	o, ok := h.FindByID("GB2")
	require.True(t, ok)
	assert.Equal(t, "GB2", o.OrderID)
}

func TestHistory_FindMissing(t *testing.T) {
	h := NewHistory([]domain.Order{order("GB1")})
	o, ok := h.FindByID("GB404")
	assert.False(t, ok)
	assert.Empty(t, o.OrderID)
}

func TestHistory_Ordering(t *testing.T) {
	h := NewHistory([]domain.Order{order("a"), order("b"), order("c")})

	var all, recent []string
	for _, o := range h.All() {
		all = append(all, o.OrderID)
	}
	for _, o := range h.Recent() {
		recent = append(recent, o.OrderID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, all)
	assert.Equal(t, []string{"c", "b", "a"}, recent)
}

func TestHistory_EmptyAll(t *testing.T) {
	h := NewHistory(nil)
	assert.NotNil(t, h.All())
	assert.Empty(t, h.All())
}
