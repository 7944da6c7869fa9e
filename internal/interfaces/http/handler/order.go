package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apporder "github.com/balmstore/backend/internal/application/order"
	"github.com/balmstore/backend/internal/domain/shared"
	"github.com/balmstore/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orders *apporder.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *apporder.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req apporder.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.UserID = middleware.GetUserID(c)

	ord, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ord)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter apporder.ListOrdersFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = shared.DefaultPageSize
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	ord, err := h.orders.Get(c.Request.Context(), uint(id))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ord)
}

// Update handles PUT /orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	var req apporder.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ord, err := h.orders.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ord)
}

// Stats handles GET /orders/stats/summary
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orders.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
