package order

import (
	"context"

	"github.com/shopspring/decimal"
)

// Filter narrows order listings
type Filter struct {
	Status        Status
	PaymentStatus PaymentStatus
	Email         string
	Offset        int
	Limit         int
}

// Repository defines the interface for order persistence
type Repository interface {
	// Create persists a new order
	Create(ctx context.Context, order *Order) error

	// FindByID finds an order by its numeric id
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNumber finds an order by its customer-facing number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll finds orders matching the filter, newest first
	FindAll(ctx context.Context, filter Filter) ([]Order, error)

	// Save updates an existing order
	Save(ctx context.Context, order *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// CountByStatus counts orders in a fulfillment status
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// CountByPaymentStatus counts orders in a payment status
	CountByPaymentStatus(ctx context.Context, status PaymentStatus) (int64, error)

	// SumTotalPaid sums the totals of paid orders
	SumTotalPaid(ctx context.Context) (decimal.Decimal, error)

	// ExistsByOrderNumber checks if an order number is already taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
}
