package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balmstore/backend/internal/domain/order"
)

// CreateOrderItem is one line of a checkout request
type CreateOrderItem struct {
	ProductID string          `json:"product_id" binding:"required"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
}

// CreateOrderRequest carries a checkout
type CreateOrderRequest struct {
	Email           string                 `json:"email" binding:"required,email"`
	Items           []CreateOrderItem      `json:"items" binding:"required,min=1,dive"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	Tax             decimal.Decimal        `json:"tax"`
	Shipping        decimal.Decimal        `json:"shipping"`
	ShippingAddress *order.ShippingAddress `json:"shipping_address"`
	StripeSessionID string                 `json:"stripe_session_id"`
	UserID          *uint                  `json:"-"`
}

// UpdateOrderRequest carries a partial order update; nil fields are left alone
type UpdateOrderRequest struct {
	Status                *string `json:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus         *string `json:"payment_status" binding:"omitempty,oneof=unpaid paid refunded"`
	TrackingNumber        *string `json:"tracking_number" binding:"omitempty,max=100"`
	StripePaymentIntentID *string `json:"stripe_payment_intent_id" binding:"omitempty,max=255"`
}

// ListOrdersFilter represents filter options for the order list
type ListOrdersFilter struct {
	Status        string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=unpaid paid refunded"`
	Email         string `form:"email"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                    uint                  `json:"id"`
	OrderNumber           string                `json:"order_number"`
	UserID                *uint                 `json:"user_id"`
	Email                 string                `json:"email"`
	Items                 order.Items           `json:"items"`
	Subtotal              decimal.Decimal       `json:"subtotal"`
	Tax                   decimal.Decimal       `json:"tax"`
	Shipping              decimal.Decimal       `json:"shipping"`
	Total                 decimal.Decimal       `json:"total"`
	Status                string                `json:"status"`
	PaymentStatus         string                `json:"payment_status"`
	StripeSessionID       string                `json:"stripe_session_id,omitempty"`
	StripePaymentIntentID string                `json:"stripe_payment_intent_id,omitempty"`
	ShippingAddress       order.ShippingAddress `json:"shipping_address"`
	TrackingNumber        string                `json:"tracking_number,omitempty"`
	PaidAt                *time.Time            `json:"paid_at"`
	ShippedAt             *time.Time            `json:"shipped_at"`
	DeliveredAt           *time.Time            `json:"delivered_at"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// ToOrderResponse converts an order to its response shape
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		UserID:                o.UserID,
		Email:                 o.Email,
		Items:                 o.Items,
		Subtotal:              o.Subtotal,
		Tax:                   o.Tax,
		Shipping:              o.Shipping,
		Total:                 o.Total,
		Status:                o.Status.String(),
		PaymentStatus:         o.PaymentStatus.String(),
		StripeSessionID:       o.StripeSessionID,
		StripePaymentIntentID: o.StripePaymentIntentID,
		ShippingAddress:       o.ShippingAddress,
		TrackingNumber:        o.TrackingNumber,
		PaidAt:                o.PaidAt,
		ShippedAt:             o.ShippedAt,
		DeliveredAt:           o.DeliveredAt,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}

// StatsResponse summarizes the order book
type StatsResponse struct {
	TotalOrders   int64           `json:"total_orders"`
	PendingOrders int64           `json:"pending_orders"`
	PaidOrders    int64           `json:"paid_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}
