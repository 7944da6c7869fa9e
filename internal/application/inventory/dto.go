package inventory

import (
	"time"

	"github.com/balmstore/backend/internal/domain/inventory"
)

// AdjustmentRequest asks the ledger to move a product's stock by a signed
// delta. ReferenceID ties the entry to its source document (an order number,
// a restock slip) when there is one.
type AdjustmentRequest struct {
	ProductID     string
	ChangeType    inventory.ChangeType
	Delta         int
	ReferenceType inventory.ReferenceType
	ReferenceID   string
	Notes         string
	CreatedBy     *uint
}

// AdjustmentResult reports the quantities after a successful adjustment
type AdjustmentResult struct {
	ProductID      string `json:"product_id"`
	QuantityBefore int    `json:"quantity_before"`
	QuantityAfter  int    `json:"quantity_after"`
	QuantityChange int    `json:"quantity_change"`
}

// LogResponse represents one ledger entry in API responses
type LogResponse struct {
	ID             uint      `json:"id"`
	ProductID      string    `json:"product_id"`
	ChangeType     string    `json:"change_type"`
	QuantityChange int       `json:"quantity_change"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	ReferenceType  string    `json:"reference_type"`
	ReferenceID    string    `json:"reference_id"`
	Notes          string    `json:"notes"`
	CreatedBy      *uint     `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToLogResponse converts a ledger entry to its response shape
func ToLogResponse(log *inventory.InventoryLog) LogResponse {
	return LogResponse{
		ID:             log.ID,
		ProductID:      log.ProductID,
		ChangeType:     log.ChangeType.String(),
		QuantityChange: log.QuantityChange,
		QuantityBefore: log.QuantityBefore,
		QuantityAfter:  log.QuantityAfter,
		ReferenceType:  log.ReferenceType.String(),
		ReferenceID:    log.ReferenceID,
		Notes:          log.Notes,
		CreatedBy:      log.CreatedBy,
		CreatedAt:      log.CreatedAt,
	}
}

// ToLogResponses converts a slice of ledger entries
func ToLogResponses(logs []inventory.InventoryLog) []LogResponse {
	responses := make([]LogResponse, len(logs))
	for i := range logs {
		responses[i] = ToLogResponse(&logs[i])
	}
	return responses
}

// LowStockItem represents one product at or below its threshold
type LowStockItem struct {
	ProductID         string `json:"product_id"`
	Title             string `json:"title"`
	SKU               string `json:"sku"`
	StockQuantity     int    `json:"stock_quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}
