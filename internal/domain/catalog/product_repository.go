package catalog

import "context"

// ProductFilter narrows product listings
type ProductFilter struct {
	Category    string
	VisibleOnly bool
	Offset      int
	Limit       int
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDForUpdate finds a product by ID, locking the row for the
	// duration of the surrounding transaction where the driver supports it
	FindByIDForUpdate(ctx context.Context, id string) (*Product, error)

	// FindAll finds all products matching the filter, ordered by display
	// order then newest first
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)

	// FindLowStock finds visible products at or below their low stock threshold
	FindLowStock(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id string) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	// ExistsByID checks if a product with the given id exists
	ExistsByID(ctx context.Context, id string) (bool, error)

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}
