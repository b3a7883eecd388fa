package metrics

import (
	"testing"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAndQuery(t *testing.T) {
	require.NoError(t, InitMetrics(t.TempDir()))
	defer Close()

	Inc(OrdersPlaced)
	Inc(OrdersPlaced)
	Observe(OrderValue, 59.40)
	Inc(ContactFailed, tstorage.Label{Name: "channel", Value: "telegram"})

	start := time.Now().Add(-time.Minute)
	end := time.Now().Add(time.Minute)

	n, err := Sum(OrdersPlaced, start, end)
	require.NoError(t, err)
	assert.Equal(t, 2.0, n)

	v, err := Sum(OrderValue, start, end)
	require.NoError(t, err)
	assert.InDelta(t, 59.40, v, 0.0001)

	f, err := Sum(ContactFailed, start, end, tstorage.Label{Name: "channel", Value: "telegram"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)

	none, err := Query(ContactDelivered, start, end)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNotInitialized(t *testing.T) {
	require.NoError(t, Close())
	Inc(OrdersPlaced)

	_, err := Query(OrdersPlaced, time.Now().Add(-time.Minute), time.Now())
	assert.Error(t, err)
}
