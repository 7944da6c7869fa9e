package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/balmstore/backend/internal/domain/order"
	"github.com/balmstore/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists a new order
func (r *GormOrderRepository) Create(ctx context.Context, ord *order.Order) error {
	if err := r.db.WithContext(ctx).Create(ord).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds an order by its numeric id
func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var ord order.Order
	if err := r.db.WithContext(ctx).First(&ord, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ord, nil
}

// FindByOrderNumber finds an order by its customer-facing number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var ord order.Order
	if err := r.db.WithContext(ctx).First(&ord, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ord, nil
}

// FindAll finds orders matching the filter, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter).
		Order("created_at DESC, id DESC")

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save updates an existing order
func (r *GormOrderRepository) Save(ctx context.Context, ord *order.Order) error {
	return r.db.WithContext(ctx).Save(ord).Error
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter order.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts orders in a fulfillment status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	return r.Count(ctx, order.Filter{Status: status})
}

// CountByPaymentStatus counts orders in a payment status
func (r *GormOrderRepository) CountByPaymentStatus(ctx context.Context, status order.PaymentStatus) (int64, error) {
	return r.Count(ctx, order.Filter{PaymentStatus: status})
}

// SumTotalPaid sums the totals of paid orders
func (r *GormOrderRepository) SumTotalPaid(ctx context.Context) (decimal.Decimal, error) {
	var total sql.NullString
	if err := r.db.WithContext(ctx).Model(&order.Order{}).
		Where("payment_status = ?", order.PaymentStatusPaid).
		Select("SUM(total)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	sum, err := decimal.NewFromString(total.String)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// ExistsByOrderNumber checks if an order number is already taken
func (r *GormOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&order.Order{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter order.Filter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}
	return query
}

// Ensure GormOrderRepository implements Repository
var _ order.Repository = (*GormOrderRepository)(nil)
