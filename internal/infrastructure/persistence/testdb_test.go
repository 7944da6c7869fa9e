package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/balmstore/backend/internal/domain/catalog"
	"github.com/balmstore/backend/internal/infrastructure/config"
)

// newTestDatabase opens a migrated in-memory sqlite database
func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// mustProduct creates and saves a product with the given stock
func mustProduct(t *testing.T, db *Database, id string, stock int) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(id, "Product "+id, "", decimal.NewFromFloat(19.90))
	require.NoError(t, err)
	product.StockQuantity = stock

	repo := NewGormProductRepository(db.DB)
	require.NoError(t, repo.Save(context.Background(), product))
	return product
}
