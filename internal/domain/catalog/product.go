package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/balmstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is applied when a product is created without an
// explicit threshold.
const DefaultLowStockThreshold = 5

// StringList stores a list of strings as a JSON array column.
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Product represents a sellable item in the catalog
// It is the aggregate root for catalog operations; its identifier is a
// human-chosen slug (e.g. "balm-original") rather than a surrogate key
type Product struct {
	ID                string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title             string          `gorm:"type:varchar(200);not null" json:"title"`
	MainCategory      string          `gorm:"type:varchar(100);index" json:"main_category"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	Image             string          `gorm:"type:varchar(500)" json:"image"`
	Images            StringList      `gorm:"type:text" json:"images"`
	Description       string          `gorm:"type:text" json:"description"`
	FullDescription   string          `gorm:"type:text" json:"full_description"`
	Sizes             StringList      `gorm:"type:text" json:"sizes"`
	Colors            StringList      `gorm:"type:text" json:"colors"`
	StockQuantity     int             `gorm:"not null;default:0" json:"stock_quantity"`
	LowStockThreshold int             `gorm:"not null" json:"low_stock_threshold"`
	SKU               string          `gorm:"type:varchar(100);uniqueIndex" json:"sku"`
	Visible           bool            `gorm:"not null" json:"visible"`
	Featured          bool            `gorm:"not null;default:false" json:"featured"`
	DisplayOrder      int             `gorm:"not null;default:0" json:"display_order"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with zero stock and default visibility
func NewProduct(id, title, sku string, price decimal.Decimal) (*Product, error) {
	if err := validateProductID(id); err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	// SKUs are stored upper case so uniqueness checks are case-insensitive
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		sku = strings.ToUpper(id)
	}

	return &Product{
		ID:                strings.ToLower(strings.TrimSpace(id)),
		Title:             title,
		Price:             price,
		Images:            StringList{},
		Sizes:             StringList{},
		Colors:            StringList{},
		LowStockThreshold: DefaultLowStockThreshold,
		SKU:               sku,
		Visible:           true,
	}, nil
}

// AdjustStock applies a signed quantity change. The caller is responsible for
// recording the change in the inventory ledger within the same transaction.
func (p *Product) AdjustStock(delta int) error {
	next := p.StockQuantity + delta
	if next < 0 {
		return shared.NewInsufficientStockError(p.ID, -delta, p.StockQuantity)
	}
	p.StockQuantity = next
	p.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether the product is at or below its threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// validateProductID validates the product identifier (URL slug)
func validateProductID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return shared.NewDomainError("INVALID_ID", "Product id cannot be empty")
	}
	if len(id) > 64 {
		return shared.NewDomainError("INVALID_ID", "Product id cannot exceed 64 characters")
	}
	for _, r := range id {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_ID", "Product id can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateTitle validates the product title
func validateTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 200 characters")
	}
	return nil
}
