package inventory

import (
	"time"

	"github.com/balmstore/backend/internal/domain/shared"
)

// ChangeType represents the kind of stock movement recorded in the ledger
type ChangeType string

const (
	// ChangeTypeStockIn represents stock received (restock, initial load)
	ChangeTypeStockIn ChangeType = "stock_in"
	// ChangeTypeStockOut represents stock removed outside of a sale
	ChangeTypeStockOut ChangeType = "stock_out"
	// ChangeTypeAdjustment represents a manual correction by an operator
	ChangeTypeAdjustment ChangeType = "adjustment"
	// ChangeTypeSale represents stock sold through an order
	ChangeTypeSale ChangeType = "sale"
	// ChangeTypeReturn represents stock returned by a customer
	ChangeTypeReturn ChangeType = "return"
)

// String returns the string representation of ChangeType
func (t ChangeType) String() string {
	return string(t)
}

// IsValid returns true if the change type is valid
func (t ChangeType) IsValid() bool {
	switch t {
	case ChangeTypeStockIn,
		ChangeTypeStockOut,
		ChangeTypeAdjustment,
		ChangeTypeSale,
		ChangeTypeReturn:
		return true
	}
	return false
}

// ReferenceType identifies the document or action a ledger entry traces to
type ReferenceType string

const (
	// ReferenceTypeOrder links a ledger entry to an order number
	ReferenceTypeOrder ReferenceType = "order"
	// ReferenceTypeManual marks an operator-initiated adjustment
	ReferenceTypeManual ReferenceType = "manual"
	// ReferenceTypeRestock marks a replenishment
	ReferenceTypeRestock ReferenceType = "restock"
	// ReferenceTypeInitial marks the stock a product was created with
	ReferenceTypeInitial ReferenceType = "initial"
)

// String returns the string representation of ReferenceType
func (r ReferenceType) String() string {
	return string(r)
}

// IsValid returns true if the reference type is valid
func (r ReferenceType) IsValid() bool {
	switch r {
	case ReferenceTypeOrder,
		ReferenceTypeManual,
		ReferenceTypeRestock,
		ReferenceTypeInitial:
		return true
	}
	return false
}

// InventoryLog is one immutable entry in the stock ledger. Entries are only
// ever appended; the repository exposes no update or delete path.
type InventoryLog struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID      string        `gorm:"type:varchar(64);not null;index" json:"product_id"`
	ChangeType     ChangeType    `gorm:"type:varchar(20);not null" json:"change_type"`
	QuantityChange int           `gorm:"not null" json:"quantity_change"`
	QuantityBefore int           `gorm:"not null" json:"quantity_before"`
	QuantityAfter  int           `gorm:"not null" json:"quantity_after"`
	ReferenceType  ReferenceType `gorm:"type:varchar(20)" json:"reference_type"`
	ReferenceID    string        `gorm:"type:varchar(64);index" json:"reference_id"`
	Notes          string        `gorm:"type:text" json:"notes"`
	CreatedBy      *uint         `gorm:"index" json:"created_by"`
	CreatedAt      time.Time     `gorm:"index" json:"created_at"`
}

// TableName returns the table name for GORM
func (InventoryLog) TableName() string {
	return "inventory_logs"
}

// NewInventoryLog creates a ledger entry. The before and after quantities must
// agree with the change; entries that record no movement are rejected.
func NewInventoryLog(
	productID string,
	changeType ChangeType,
	quantityChange, quantityBefore int,
	referenceType ReferenceType,
	referenceID, notes string,
	createdBy *uint,
) (*InventoryLog, error) {
	if productID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product id cannot be empty")
	}
	if !changeType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANGE_TYPE", "Unknown inventory change type")
	}
	if referenceType != "" && !referenceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_REFERENCE_TYPE", "Unknown inventory reference type")
	}
	if quantityChange == 0 {
		return nil, shared.NewDomainError("EMPTY_CHANGE", "Quantity change cannot be zero")
	}
	after := quantityBefore + quantityChange
	if after < 0 {
		return nil, shared.NewInsufficientStockError(productID, -quantityChange, quantityBefore)
	}

	return &InventoryLog{
		ProductID:      productID,
		ChangeType:     changeType,
		QuantityChange: quantityChange,
		QuantityBefore: quantityBefore,
		QuantityAfter:  after,
		ReferenceType:  referenceType,
		ReferenceID:    referenceID,
		Notes:          notes,
		CreatedBy:      createdBy,
	}, nil
}
