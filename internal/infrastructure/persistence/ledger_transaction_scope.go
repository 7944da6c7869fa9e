package persistence

import (
	"context"

	"gorm.io/gorm"

	appinventory "github.com/balmstore/backend/internal/application/inventory"
	"github.com/balmstore/backend/internal/domain/catalog"
	"github.com/balmstore/backend/internal/domain/inventory"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// The ledger write and the product stock update commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories scoped to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Products returns the product repository scoped to the current transaction
func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Logs returns the inventory log repository scoped to the current transaction
func (r *gormTransactionalRepositories) Logs() inventory.LogRepository {
	return NewGormInventoryLogRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinventory.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinventory.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
