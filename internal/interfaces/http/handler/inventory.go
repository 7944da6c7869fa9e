package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/balmstore/backend/internal/application/inventory"
	"github.com/balmstore/backend/internal/domain/inventory"
	"github.com/balmstore/backend/internal/domain/shared"
	"github.com/balmstore/backend/internal/interfaces/http/middleware"
)

// InventoryHandler handles the stock ledger endpoints
type InventoryHandler struct {
	BaseHandler
	ledger *appinventory.LedgerService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(ledger *appinventory.LedgerService) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// AdjustRequest is the body of a manual stock adjustment. A zero delta is
// accepted and leaves the quantity untouched.
type AdjustRequest struct {
	Delta int    `json:"delta"`
	Notes string `json:"notes" binding:"max=500"`
}

// Adjust handles POST /products/:id/inventory/adjust
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.ledger.Apply(c.Request.Context(), appinventory.AdjustmentRequest{
		ProductID:     c.Param("id"),
		ChangeType:    inventory.ChangeTypeAdjustment,
		Delta:         req.Delta,
		ReferenceType: inventory.ReferenceTypeManual,
		Notes:         req.Notes,
		CreatedBy:     middleware.GetUserID(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// logListQuery narrows the ledger listing
type logListQuery struct {
	ChangeType string `form:"change_type" binding:"omitempty,oneof=stock_in stock_out adjustment sale return"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Logs handles GET /products/:id/inventory
func (h *InventoryHandler) Logs(c *gin.Context) {
	var query logListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = shared.DefaultPageSize
	}

	logs, total, err := h.ledger.ListLogs(c.Request.Context(), c.Param("id"), inventory.LogFilter{
		ChangeType: inventory.ChangeType(query.ChangeType),
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, logs, total, page, pageSize)
}

// LowStock handles GET /inventory/low-stock
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.ledger.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
