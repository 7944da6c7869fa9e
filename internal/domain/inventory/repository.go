package inventory

import "context"

// LogFilter narrows ledger queries
type LogFilter struct {
	ProductID  string
	ChangeType ChangeType
	Offset     int
	Limit      int
}

// LogRepository persists ledger entries. The ledger is append-only, so the
// interface deliberately offers no update or delete.
type LogRepository interface {
	// Create appends a ledger entry
	Create(ctx context.Context, log *InventoryLog) error

	// FindByProduct returns entries for a product, newest first
	FindByProduct(ctx context.Context, productID string, filter LogFilter) ([]InventoryLog, error)

	// FindAll returns entries matching the filter, newest first
	FindAll(ctx context.Context, filter LogFilter) ([]InventoryLog, error)

	// CountByProduct counts entries for a product
	CountByProduct(ctx context.Context, productID string) (int64, error)
}
