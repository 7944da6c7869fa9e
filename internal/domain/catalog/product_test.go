package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balmstore/backend/internal/domain/shared"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("balm-original", "Original Balm", "BALM-001", decimal.NewFromFloat(24.90))
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "balm-original", product.ID)
		assert.Equal(t, "Original Balm", product.Title)
		assert.Equal(t, "BALM-001", product.SKU)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(24.90)))
		assert.Equal(t, 0, product.StockQuantity)
		assert.Equal(t, DefaultLowStockThreshold, product.LowStockThreshold)
		assert.True(t, product.Visible)
		assert.False(t, product.Featured)
	})

	t.Run("normalizes id to lowercase", func(t *testing.T) {
		product, err := NewProduct("Balm-Original", "Original Balm", "", decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "balm-original", product.ID)
	})

	t.Run("defaults SKU from id", func(t *testing.T) {
		product, err := NewProduct("balm-original", "Original Balm", "", decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "BALM-ORIGINAL", product.SKU)
	})

	t.Run("fails with empty id", func(t *testing.T) {
		_, err := NewProduct("", "Original Balm", "", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id cannot be empty")
	})

	t.Run("fails with invalid id characters", func(t *testing.T) {
		_, err := NewProduct("balm original!", "Original Balm", "", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can only contain letters")
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewProduct("balm-original", "", "", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("balm-original", "Original Balm", "", decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestProductAdjustStock(t *testing.T) {
	newProduct := func(t *testing.T, stock int) *Product {
		t.Helper()
		product, err := NewProduct("balm-original", "Original Balm", "", decimal.Zero)
		require.NoError(t, err)
		product.StockQuantity = stock
		return product
	}

	t.Run("applies positive delta", func(t *testing.T) {
		product := newProduct(t, 10)
		require.NoError(t, product.AdjustStock(5))
		assert.Equal(t, 15, product.StockQuantity)
	})

	t.Run("applies negative delta down to zero", func(t *testing.T) {
		product := newProduct(t, 10)
		require.NoError(t, product.AdjustStock(-10))
		assert.Equal(t, 0, product.StockQuantity)
	})

	t.Run("refuses to go below zero and leaves stock unchanged", func(t *testing.T) {
		product := newProduct(t, 3)
		err := product.AdjustStock(-4)
		require.Error(t, err)

		var stockErr *shared.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "balm-original", stockErr.ProductID)
		assert.Equal(t, 4, stockErr.Requested)
		assert.Equal(t, 3, stockErr.Available)
		assert.Equal(t, 3, product.StockQuantity)
	})
}

func TestProductIsLowStock(t *testing.T) {
	product, err := NewProduct("balm-original", "Original Balm", "", decimal.Zero)
	require.NoError(t, err)
	product.LowStockThreshold = 5

	product.StockQuantity = 6
	assert.False(t, product.IsLowStock())

	product.StockQuantity = 5
	assert.True(t, product.IsLowStock())

	product.StockQuantity = 0
	assert.True(t, product.IsLowStock())
}

func TestStringListRoundTrip(t *testing.T) {
	t.Run("marshals to JSON array", func(t *testing.T) {
		value, err := StringList{"s", "m", "l"}.Value()
		require.NoError(t, err)
		assert.Equal(t, `["s","m","l"]`, value)
	})

	t.Run("nil marshals to empty array", func(t *testing.T) {
		value, err := StringList(nil).Value()
		require.NoError(t, err)
		assert.Equal(t, `[]`, value)
	})

	t.Run("scans string and bytes", func(t *testing.T) {
		var fromString StringList
		require.NoError(t, fromString.Scan(`["a","b"]`))
		assert.Equal(t, StringList{"a", "b"}, fromString)

		var fromBytes StringList
		require.NoError(t, fromBytes.Scan([]byte(`["c"]`)))
		assert.Equal(t, StringList{"c"}, fromBytes)
	})

	t.Run("scans nil as empty list", func(t *testing.T) {
		var list StringList
		require.NoError(t, list.Scan(nil))
		assert.Equal(t, StringList{}, list)
	})
}
