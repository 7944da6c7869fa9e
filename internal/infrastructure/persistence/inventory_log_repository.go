package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/balmstore/backend/internal/domain/inventory"
)

// GormInventoryLogRepository implements LogRepository using GORM.
// The inventory log is append-only; no update or delete is exposed.
type GormInventoryLogRepository struct {
	db *gorm.DB
}

// NewGormInventoryLogRepository creates a new GormInventoryLogRepository
func NewGormInventoryLogRepository(db *gorm.DB) *GormInventoryLogRepository {
	return &GormInventoryLogRepository{db: db}
}

// Create appends a new inventory log entry
func (r *GormInventoryLogRepository) Create(ctx context.Context, log *inventory.InventoryLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByProduct finds log entries for a product, newest first
func (r *GormInventoryLogRepository) FindByProduct(ctx context.Context, productID string, filter inventory.LogFilter) ([]inventory.InventoryLog, error) {
	filter.ProductID = productID
	return r.find(ctx, filter)
}

// FindAll finds log entries matching the filter, newest first
func (r *GormInventoryLogRepository) FindAll(ctx context.Context, filter inventory.LogFilter) ([]inventory.InventoryLog, error) {
	return r.find(ctx, filter)
}

// CountByProduct counts log entries for a product
func (r *GormInventoryLogRepository) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.InventoryLog{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInventoryLogRepository) find(ctx context.Context, filter inventory.LogFilter) ([]inventory.InventoryLog, error) {
	var logs []inventory.InventoryLog
	query := r.db.WithContext(ctx).Model(&inventory.InventoryLog{}).
		Order("created_at DESC, id DESC")

	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.ChangeType != "" {
		query = query.Where("change_type = ?", filter.ChangeType)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Ensure GormInventoryLogRepository implements LogRepository
var _ inventory.LogRepository = (*GormInventoryLogRepository)(nil)
