package order

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() Items {
	return Items{
		{ProductID: "balm-original", Title: "Original Balm", Quantity: 2, UnitPrice: decimal.NewFromFloat(24.90)},
	}
}

func TestNewOrderNumber(t *testing.T) {
	t.Run("has the expected shape", func(t *testing.T) {
		number := NewOrderNumber()
		require.Len(t, number, 16)
		assert.True(t, strings.HasPrefix(number, "ORD-"))
		for _, r := range number[4:] {
			assert.Contains(t, "0123456789ABCDEF", string(r))
		}
	})

	t.Run("generates unique numbers", func(t *testing.T) {
		seen := make(map[string]struct{}, 10000)
		for i := 0; i < 10000; i++ {
			number := NewOrderNumber()
			_, dup := seen[number]
			require.False(t, dup, "duplicate order number %s", number)
			seen[number] = struct{}{}
		}
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending unpaid order with computed total", func(t *testing.T) {
		ord, err := NewOrder("Buyer@Example.com", testItems(),
			decimal.NewFromFloat(49.80), decimal.NewFromFloat(4.15), decimal.NewFromFloat(5.00))
		require.NoError(t, err)

		assert.Equal(t, "buyer@example.com", ord.Email)
		assert.Equal(t, StatusPending, ord.Status)
		assert.Equal(t, PaymentStatusUnpaid, ord.PaymentStatus)
		assert.True(t, ord.Total.Equal(decimal.NewFromFloat(58.95)))
		assert.Nil(t, ord.PaidAt)
		assert.Nil(t, ord.ShippedAt)
		assert.Nil(t, ord.DeliveredAt)
		assert.NotEmpty(t, ord.OrderNumber)
	})

	t.Run("rejects empty email", func(t *testing.T) {
		_, err := NewOrder("", testItems(), decimal.Zero, decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := NewOrder("buyer@example.com", Items{}, decimal.Zero, decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects non-positive item quantity", func(t *testing.T) {
		items := Items{{ProductID: "balm-original", Quantity: 0}}
		_, err := NewOrder("buyer@example.com", items, decimal.Zero, decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})
}

func TestOrderSetStatus(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		t.Helper()
		ord, err := NewOrder("buyer@example.com", testItems(), decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		return ord
	}

	t.Run("stamps shipped_at once", func(t *testing.T) {
		ord := newOrder(t)
		require.NoError(t, ord.SetStatus(StatusShipped))
		require.NotNil(t, ord.ShippedAt)
		first := *ord.ShippedAt

		require.NoError(t, ord.SetStatus(StatusShipped))
		assert.Equal(t, first, *ord.ShippedAt)
	})

	t.Run("stamp survives a round trip through another status", func(t *testing.T) {
		ord := newOrder(t)
		require.NoError(t, ord.SetStatus(StatusShipped))
		first := *ord.ShippedAt

		require.NoError(t, ord.SetStatus(StatusProcessing))
		require.NoError(t, ord.SetStatus(StatusShipped))
		assert.Equal(t, first, *ord.ShippedAt)
	})

	t.Run("stamps delivered_at once", func(t *testing.T) {
		ord := newOrder(t)
		require.NoError(t, ord.SetStatus(StatusDelivered))
		require.NotNil(t, ord.DeliveredAt)
		first := *ord.DeliveredAt

		require.NoError(t, ord.SetStatus(StatusDelivered))
		assert.Equal(t, first, *ord.DeliveredAt)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		ord := newOrder(t)
		require.Error(t, ord.SetStatus(Status("lost")))
	})
}

func TestOrderSetPaymentStatus(t *testing.T) {
	ord, err := NewOrder("buyer@example.com", testItems(), decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, ord.SetPaymentStatus(PaymentStatusPaid))
	require.NotNil(t, ord.PaidAt)
	first := *ord.PaidAt

	require.NoError(t, ord.SetPaymentStatus(PaymentStatusPaid))
	assert.Equal(t, first, *ord.PaidAt)

	require.NoError(t, ord.SetPaymentStatus(PaymentStatusRefunded))
	assert.Equal(t, PaymentStatusRefunded, ord.PaymentStatus)
	assert.Equal(t, first, *ord.PaidAt)

	require.Error(t, ord.SetPaymentStatus(PaymentStatus("chargeback")))
}

func TestItemsRoundTrip(t *testing.T) {
	items := Items{
		{ProductID: "balm-original", Title: "Original Balm", Quantity: 2, UnitPrice: decimal.NewFromFloat(24.90), Size: "50ml"},
	}

	value, err := items.Value()
	require.NoError(t, err)

	var decoded Items
	require.NoError(t, decoded.Scan(value))
	require.Len(t, decoded, 1)
	assert.Equal(t, "balm-original", decoded[0].ProductID)
	assert.Equal(t, 2, decoded[0].Quantity)
	assert.True(t, decoded[0].UnitPrice.Equal(decimal.NewFromFloat(24.90)))

	var empty Items
	require.NoError(t, empty.Scan(nil))
	assert.Equal(t, Items{}, empty)
}
