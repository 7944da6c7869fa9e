package catalog

import (
	"context"
	"fmt"
	"strings"

	appinventory "github.com/balmstore/backend/internal/application/inventory"
	"github.com/balmstore/backend/internal/domain/catalog"
	"github.com/balmstore/backend/internal/domain/inventory"
	"github.com/balmstore/backend/internal/domain/shared"
)

// ProductService handles catalog operations. Stock changes are delegated to
// the ledger so every movement ends up in the audit trail.
type ProductService struct {
	products catalog.ProductRepository
	ledger   *appinventory.LedgerService
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, ledger *appinventory.LedgerService) *ProductService {
	return &ProductService{
		products: products,
		ledger:   ledger,
	}
}

// Create adds a product to the catalog. Starting stock is seeded through the
// ledger so the product's history begins with an entry.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, createdBy *uint) (*ProductResponse, error) {
	price := req.Price
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product, err := catalog.NewProduct(req.ID, req.Title, req.SKU, price)
	if err != nil {
		return nil, err
	}

	exists, err := s.products.ExistsByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Product %s already exists", product.ID))
	}
	skuTaken, err := s.products.ExistsBySKU(ctx, product.SKU)
	if err != nil {
		return nil, err
	}
	if skuTaken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("SKU %s is already in use", product.SKU))
	}

	product.MainCategory = req.MainCategory
	product.Image = req.Image
	product.Images = catalog.StringList(req.Images)
	product.Description = req.Description
	product.FullDescription = req.FullDescription
	product.Sizes = catalog.StringList(req.Sizes)
	product.Colors = catalog.StringList(req.Colors)
	product.Featured = req.Featured
	product.DisplayOrder = req.DisplayOrder
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Visible != nil {
		product.Visible = *req.Visible
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	if req.StockQuantity > 0 {
		_, err := s.ledger.Apply(ctx, appinventory.AdjustmentRequest{
			ProductID:     product.ID,
			ChangeType:    inventory.ChangeTypeStockIn,
			Delta:         req.StockQuantity,
			ReferenceType: inventory.ReferenceTypeInitial,
			Notes:         "Initial stock",
			CreatedBy:     createdBy,
		})
		if err != nil {
			return nil, err
		}
		product.StockQuantity = req.StockQuantity
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Get returns a product by id
func (s *ProductService) Get(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns products matching the filter. Hidden products are only
// included when the caller asks for them (admin views).
func (s *ProductService) List(ctx context.Context, filter ListProductsFilter) ([]ProductResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = shared.DefaultPageSize
	}

	repoFilter := catalog.ProductFilter{
		Category:    filter.Category,
		VisibleOnly: !filter.IncludeAll,
		Offset:      (page - 1) * pageSize,
		Limit:       pageSize,
	}

	products, err := s.products.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update applies a partial update. A stock quantity change goes through the
// ledger as a manual adjustment so the audit trail stays complete.
func (s *ProductService) Update(ctx context.Context, id string, req UpdateProductRequest, updatedBy *uint) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
		}
		product.Price = *req.Price
	}
	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.MainCategory != nil {
		product.MainCategory = *req.MainCategory
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Images != nil {
		product.Images = catalog.StringList(*req.Images)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.FullDescription != nil {
		product.FullDescription = *req.FullDescription
	}
	if req.Sizes != nil {
		product.Sizes = catalog.StringList(*req.Sizes)
	}
	if req.Colors != nil {
		product.Colors = catalog.StringList(*req.Colors)
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}
	if req.SKU != nil {
		sku := strings.ToUpper(strings.TrimSpace(*req.SKU))
		if sku != "" && sku != product.SKU {
			skuTaken, err := s.products.ExistsBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if skuTaken {
				return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("SKU %s is already in use", sku))
			}
			product.SKU = sku
		}
	}
	if req.Visible != nil {
		product.Visible = *req.Visible
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.DisplayOrder != nil {
		product.DisplayOrder = *req.DisplayOrder
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	if req.StockQuantity != nil && *req.StockQuantity != product.StockQuantity {
		delta := *req.StockQuantity - product.StockQuantity
		result, err := s.ledger.Apply(ctx, appinventory.AdjustmentRequest{
			ProductID:     product.ID,
			ChangeType:    inventory.ChangeTypeAdjustment,
			Delta:         delta,
			ReferenceType: inventory.ReferenceTypeManual,
			Notes:         "Stock edited via product update",
			CreatedBy:     updatedBy,
		})
		if err != nil {
			return nil, err
		}
		product.StockQuantity = result.QuantityAfter
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog. Ledger entries and order item
// snapshots keep their product id; they are historical records, not foreign
// keys.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	exists, err := s.products.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return s.products.Delete(ctx, id)
}
