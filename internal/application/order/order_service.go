package order

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	appinventory "github.com/balmstore/backend/internal/application/inventory"
	"github.com/balmstore/backend/internal/domain/inventory"
	"github.com/balmstore/backend/internal/domain/order"
	"github.com/balmstore/backend/internal/domain/shared"
)

// orderNumberAttempts bounds the retry loop for the one-in-2^48 collision
const orderNumberAttempts = 5

// ConfirmationMailer sends an order confirmation after checkout. Implemented
// by the email infrastructure; nil means confirmations are disabled.
type ConfirmationMailer interface {
	SendOrderConfirmation(ctx context.Context, o *order.Order) error
}

// OrderService drives the order pipeline: checkout, admin updates, stats.
type OrderService struct {
	orders order.Repository
	ledger *appinventory.LedgerService
	mailer ConfirmationMailer
	logger *zap.Logger
}

// NewOrderService creates a new OrderService. mailer may be nil.
func NewOrderService(
	orders order.Repository,
	ledger *appinventory.LedgerService,
	mailer ConfirmationMailer,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders: orders,
		ledger: ledger,
		mailer: mailer,
		logger: logger,
	}
}

// Create records a checkout. The order is persisted first; stock is then
// deducted per item through the ledger. An item whose product is missing or
// short on stock is skipped rather than failing the checkout: the customer
// has already paid, so the shortfall is an operations problem, not theirs.
// Skips are logged so they can be reconciled.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	items := make(order.Items, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.Item{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Size:      item.Size,
			Color:     item.Color,
		}
	}

	ord, err := order.NewOrder(req.Email, items, req.Subtotal, req.Tax, req.Shipping)
	if err != nil {
		return nil, err
	}
	ord.UserID = req.UserID
	ord.StripeSessionID = req.StripeSessionID
	if req.ShippingAddress != nil {
		ord.ShippingAddress = *req.ShippingAddress
	}

	if err := s.createWithUniqueNumber(ctx, ord); err != nil {
		return nil, err
	}

	for _, item := range ord.Items {
		_, err := s.ledger.Apply(ctx, appinventory.AdjustmentRequest{
			ProductID:     item.ProductID,
			ChangeType:    inventory.ChangeTypeSale,
			Delta:         -item.Quantity,
			ReferenceType: inventory.ReferenceTypeOrder,
			ReferenceID:   ord.OrderNumber,
			Notes:         fmt.Sprintf("Sold via order %s", ord.OrderNumber),
		})
		if err != nil {
			var stockErr *shared.InsufficientStockError
			switch {
			case errors.As(err, &stockErr):
				s.logger.Warn("order item skipped: insufficient stock",
					zap.String("order_number", ord.OrderNumber),
					zap.String("product_id", item.ProductID),
					zap.Int("requested", stockErr.Requested),
					zap.Int("available", stockErr.Available))
			case errors.Is(err, shared.ErrNotFound):
				s.logger.Warn("order item skipped: unknown product",
					zap.String("order_number", ord.OrderNumber),
					zap.String("product_id", item.ProductID))
			default:
				return nil, err
			}
		}
	}

	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(ctx, ord); err != nil {
			s.logger.Warn("order confirmation email failed",
				zap.String("order_number", ord.OrderNumber),
				zap.Error(err))
		}
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

// createWithUniqueNumber persists the order, regenerating the order number if
// it collides with an existing one.
func (s *OrderService) createWithUniqueNumber(ctx context.Context, ord *order.Order) error {
	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		taken, err := s.orders.ExistsByOrderNumber(ctx, ord.OrderNumber)
		if err != nil {
			return err
		}
		if !taken {
			if err := s.orders.Create(ctx, ord); err != nil {
				if errors.Is(err, shared.ErrAlreadyExists) {
					// lost the race for this number, roll a new one
					lastErr = err
					ord.OrderNumber = order.NewOrderNumber()
					continue
				}
				return err
			}
			return nil
		}
		ord.OrderNumber = order.NewOrderNumber()
	}
	return lastErr
}

// Get returns an order by id
func (s *OrderService) Get(ctx context.Context, id uint) (*OrderResponse, error) {
	ord, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(ord)
	return &response, nil
}

// List returns orders matching the filter, newest first
func (s *OrderService) List(ctx context.Context, filter ListOrdersFilter) ([]OrderResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = shared.DefaultPageSize
	}

	repoFilter := order.Filter{
		Status:        order.Status(filter.Status),
		PaymentStatus: order.PaymentStatus(filter.PaymentStatus),
		Email:         filter.Email,
		Offset:        (page - 1) * pageSize,
		Limit:         pageSize,
	}

	orders, err := s.orders.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// Update applies a partial admin update. The timestamp for each milestone is
// stamped the first time the matching status is set and never rewritten.
func (s *OrderService) Update(ctx context.Context, id uint, req UpdateOrderRequest) (*OrderResponse, error) {
	ord, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := ord.SetStatus(order.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.PaymentStatus != nil {
		if err := ord.SetPaymentStatus(order.PaymentStatus(*req.PaymentStatus)); err != nil {
			return nil, err
		}
	}
	if req.TrackingNumber != nil {
		ord.TrackingNumber = *req.TrackingNumber
	}
	if req.StripePaymentIntentID != nil {
		ord.StripePaymentIntentID = *req.StripePaymentIntentID
	}

	if err := s.orders.Save(ctx, ord); err != nil {
		return nil, err
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

// Stats summarizes the order book for the admin dashboard
func (s *OrderService) Stats(ctx context.Context) (*StatsResponse, error) {
	total, err := s.orders.Count(ctx, order.Filter{})
	if err != nil {
		return nil, err
	}
	pending, err := s.orders.CountByStatus(ctx, order.StatusPending)
	if err != nil {
		return nil, err
	}
	paid, err := s.orders.CountByPaymentStatus(ctx, order.PaymentStatusPaid)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.SumTotalPaid(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalOrders:   total,
		PendingOrders: pending,
		PaidOrders:    paid,
		TotalRevenue:  revenue,
	}, nil
}
