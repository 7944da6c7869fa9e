package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balmstore/backend/internal/domain/order"
	"github.com/balmstore/backend/internal/domain/shared"
)

func mustOrder(t *testing.T, repo *GormOrderRepository, email string, total float64) *order.Order {
	t.Helper()

	ord, err := order.NewOrder(email, []order.Item{
		{ProductID: "rose-balm", Title: "Rose Balm", Quantity: 1, UnitPrice: decimal.NewFromFloat(total)},
	}, decimal.NewFromFloat(total), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), ord))
	return ord
}

func TestGormOrderRepository_FindByOrderNumber(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormOrderRepository(db.DB)
	ctx := context.Background()

	created := mustOrder(t, repo, "jane@example.com", 19.90)

	t.Run("finds existing order", func(t *testing.T) {
		found, err := repo.FindByOrderNumber(ctx, created.OrderNumber)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "jane@example.com", found.Email)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "rose-balm", found.Items[0].ProductID)
	})

	t.Run("returns not found for unknown number", func(t *testing.T) {
		_, err := repo.FindByOrderNumber(ctx, "ORD-000000000000")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("exists by order number", func(t *testing.T) {
		exists, err := repo.ExistsByOrderNumber(ctx, created.OrderNumber)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestGormOrderRepository_CreateDuplicateOrderNumber(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormOrderRepository(db.DB)
	ctx := context.Background()

	existing := mustOrder(t, repo, "jane@example.com", 10)

	clash, err := order.NewOrder("john@example.com", []order.Item{
		{ProductID: "rose-balm", Title: "Rose Balm", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
	}, decimal.NewFromInt(10), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	clash.OrderNumber = existing.OrderNumber

	// the service retries number generation on this error, so the driver's
	// unique violation has to come back as ErrAlreadyExists
	err = repo.Create(ctx, clash)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGormOrderRepository_FindAll(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormOrderRepository(db.DB)
	ctx := context.Background()

	first := mustOrder(t, repo, "jane@example.com", 10)
	second := mustOrder(t, repo, "john@example.com", 20)

	require.NoError(t, second.SetStatus(order.StatusProcessing))
	require.NoError(t, repo.Save(ctx, second))

	t.Run("lists newest first", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, order.Filter{})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
	})

	t.Run("filters by status", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, order.Filter{Status: order.StatusPending})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, first.ID, orders[0].ID)
	})

	t.Run("filters by email", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, order.Filter{Email: "john@example.com"})
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})
}

func TestGormOrderRepository_Stats(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormOrderRepository(db.DB)
	ctx := context.Background()

	mustOrder(t, repo, "jane@example.com", 10)
	paid1 := mustOrder(t, repo, "jane@example.com", 25.50)
	paid2 := mustOrder(t, repo, "john@example.com", 14.50)

	for _, ord := range []*order.Order{paid1, paid2} {
		require.NoError(t, ord.SetPaymentStatus(order.PaymentStatusPaid))
		require.NoError(t, repo.Save(ctx, ord))
	}

	t.Run("counts by payment status", func(t *testing.T) {
		count, err := repo.CountByPaymentStatus(ctx, order.PaymentStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("counts by fulfillment status", func(t *testing.T) {
		count, err := repo.CountByStatus(ctx, order.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("sums paid totals only", func(t *testing.T) {
		total, err := repo.SumTotalPaid(ctx)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromFloat(40)), "got %s", total)
	})

	t.Run("sums to zero with no paid orders", func(t *testing.T) {
		empty := newTestDatabase(t)
		total, err := NewGormOrderRepository(empty.DB).SumTotalPaid(ctx)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}
