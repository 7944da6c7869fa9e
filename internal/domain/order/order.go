package order

import (
	"crypto/rand"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/balmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a known order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the payment status is known
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Item is a snapshot of one catalog product at purchase time. It keeps its
// own copy of title and price so later catalog edits never rewrite history.
type Item struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
}

// Items stores the order line items as a JSON column
type Items []Item

// Value implements driver.Valuer
func (i Items) Value() (driver.Value, error) {
	if i == nil {
		i = Items{}
	}
	data, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (i *Items) Scan(value interface{}) error {
	if value == nil {
		*i = Items{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Items", value)
	}
	if len(data) == 0 {
		*i = Items{}
		return nil
	}
	return json.Unmarshal(data, i)
}

// ShippingAddress stores the destination as a JSON column
type ShippingAddress struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Value implements driver.Valuer
func (a ShippingAddress) Value() (driver.Value, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ShippingAddress", value)
	}
	if len(data) == 0 {
		*a = ShippingAddress{}
		return nil
	}
	return json.Unmarshal(data, a)
}

// Order is the aggregate root for the order pipeline
type Order struct {
	ID                    uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber           string          `gorm:"type:varchar(20);not null;uniqueIndex" json:"order_number"`
	UserID                *uint           `gorm:"index" json:"user_id"`
	Email                 string          `gorm:"type:varchar(255);not null;index" json:"email"`
	Items                 Items           `gorm:"type:text" json:"items"`
	Subtotal              decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`
	Tax                   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tax"`
	Shipping              decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"shipping"`
	Total                 decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	Status                Status          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus         PaymentStatus   `gorm:"type:varchar(20);not null;default:'unpaid';index" json:"payment_status"`
	StripeSessionID       string          `gorm:"type:varchar(255)" json:"stripe_session_id"`
	StripePaymentIntentID string          `gorm:"type:varchar(255)" json:"stripe_payment_intent_id"`
	ShippingAddress       ShippingAddress `gorm:"type:text" json:"shipping_address"`
	TrackingNumber        string          `gorm:"type:varchar(100)" json:"tracking_number"`
	PaidAt                *time.Time      `json:"paid_at"`
	ShippedAt             *time.Time      `json:"shipped_at"`
	DeliveredAt           *time.Time      `json:"delivered_at"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderNumber generates a customer-facing order number: "ORD-" followed by
// 12 uppercase hex characters (48 random bits).
func NewOrderNumber() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(fmt.Sprintf("order number generation: %v", err))
	}
	return "ORD-" + strings.ToUpper(hex.EncodeToString(buf))
}

// NewOrder creates a pending, unpaid order
func NewOrder(email string, items Items, subtotal, tax, shipping decimal.Decimal) (*Order, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Order email cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	for _, item := range items {
		if item.ProductID == "" {
			return nil, shared.NewDomainError("INVALID_ITEM", "Order item product id cannot be empty")
		}
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_ITEM", "Order item quantity must be positive")
		}
	}

	return &Order{
		OrderNumber:   NewOrderNumber(),
		Email:         strings.ToLower(strings.TrimSpace(email)),
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Shipping:      shipping,
		Total:         subtotal.Add(tax).Add(shipping),
		Status:        StatusPending,
		PaymentStatus: PaymentStatusUnpaid,
	}, nil
}

// SetStatus updates the fulfillment status and stamps the matching timestamp
// the first time that status is reached. Re-applying a status is a no-op for
// the timestamp.
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	now := time.Now()
	switch status {
	case StatusShipped:
		if o.ShippedAt == nil {
			o.ShippedAt = &now
		}
	case StatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &now
		}
	}

	o.Status = status
	o.UpdatedAt = now
	return nil
}

// SetPaymentStatus updates the payment status, stamping PaidAt once on the
// first transition to paid
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Unknown payment status")
	}

	now := time.Now()
	if status == PaymentStatusPaid && o.PaidAt == nil {
		o.PaidAt = &now
	}

	o.PaymentStatus = status
	o.UpdatedAt = now
	return nil
}

// ItemCount returns the total quantity across all line items
func (o *Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
