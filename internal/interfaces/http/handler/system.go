package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balmstore/backend/internal/infrastructure/persistence"
)

// SystemHandler handles health and banner endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	name    string
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, name, version string) *SystemHandler {
	return &SystemHandler{db: db, name: name, version: version}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "down",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "up",
	})
}

// Banner handles GET /
func (h *SystemHandler) Banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.name,
		"version": h.version,
	})
}
