package inventory

import (
	"context"

	"github.com/balmstore/backend/internal/domain/catalog"
	"github.com/balmstore/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories the
// ledger writes through. When a function is executed within a scope, all
// repository operations are part of the same database transaction and commit
// or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to the
// current transaction. The product row and its ledger entry are always
// written through the same scope so the stored quantity and the ledger never
// diverge.
type TransactionalRepositories interface {
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Logs returns the ledger repository scoped to the current transaction
	Logs() inventory.LogRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests that supply mock repositories.
type NoOpTransactionScope struct {
	products catalog.ProductRepository
	logs     inventory.LogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(products catalog.ProductRepository, logs inventory.LogRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{products: products, logs: logs}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.products
}

// Logs returns the ledger repository.
func (s *NoOpTransactionScope) Logs() inventory.LogRepository {
	return s.logs
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
