package inventory

import (
	"context"

	"github.com/balmstore/backend/internal/domain/catalog"
	"github.com/balmstore/backend/internal/domain/inventory"
	"github.com/balmstore/backend/internal/domain/shared"
)

// LedgerService is the single write path for stock. Every quantity change
// goes through Apply, which updates the product and appends the matching
// ledger entry in one transaction.
type LedgerService struct {
	products catalog.ProductRepository
	logs     inventory.LogRepository
	scope    TransactionScope
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	products catalog.ProductRepository,
	logs inventory.LogRepository,
	scope TransactionScope,
) *LedgerService {
	return &LedgerService{
		products: products,
		logs:     logs,
		scope:    scope,
	}
}

// Apply moves a product's stock by the request's delta and records the move.
// A zero delta succeeds without touching anything. A delta that would drive
// the quantity below zero fails with InsufficientStockError and leaves both
// the product and the ledger untouched.
func (s *LedgerService) Apply(ctx context.Context, req AdjustmentRequest) (*AdjustmentResult, error) {
	if req.ProductID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product id cannot be empty")
	}
	if !req.ChangeType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANGE_TYPE", "Unknown inventory change type")
	}

	var result *AdjustmentResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}

		before := product.StockQuantity
		if req.Delta == 0 {
			result = &AdjustmentResult{
				ProductID:      product.ID,
				QuantityBefore: before,
				QuantityAfter:  before,
			}
			return nil
		}

		// The entry is built from the transaction-local read so before and
		// after always agree with what was actually stored.
		log, err := inventory.NewInventoryLog(
			product.ID,
			req.ChangeType,
			req.Delta,
			before,
			req.ReferenceType,
			req.ReferenceID,
			req.Notes,
			req.CreatedBy,
		)
		if err != nil {
			return err
		}

		if err := product.AdjustStock(req.Delta); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		if err := repos.Logs().Create(ctx, log); err != nil {
			return err
		}

		result = &AdjustmentResult{
			ProductID:      product.ID,
			QuantityBefore: before,
			QuantityAfter:  product.StockQuantity,
			QuantityChange: req.Delta,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListLogs returns ledger entries for a product, newest first
func (s *LedgerService) ListLogs(ctx context.Context, productID string, filter inventory.LogFilter) ([]LogResponse, int64, error) {
	exists, err := s.products.ExistsByID(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, shared.ErrNotFound
	}

	logs, err := s.logs.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.logs.CountByProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	return ToLogResponses(logs), total, nil
}

// LowStock returns visible products at or below their low stock threshold
func (s *LedgerService) LowStock(ctx context.Context) ([]LowStockItem, error) {
	products, err := s.products.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]LowStockItem, len(products))
	for i, product := range products {
		items[i] = LowStockItem{
			ProductID:         product.ID,
			Title:             product.Title,
			SKU:               product.SKU,
			StockQuantity:     product.StockQuantity,
			LowStockThreshold: product.LowStockThreshold,
		}
	}
	return items, nil
}
