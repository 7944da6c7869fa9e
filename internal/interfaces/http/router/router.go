package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/balmstore/backend/internal/infrastructure/auth"
	"github.com/balmstore/backend/internal/infrastructure/logger"
	"github.com/balmstore/backend/internal/interfaces/http/handler"
	"github.com/balmstore/backend/internal/interfaces/http/middleware"
)

// Dependencies carries everything the router needs to build the HTTP surface
type Dependencies struct {
	Logger      *zap.Logger
	JWTService  *auth.JWTService
	Products    *handler.ProductHandler
	Inventory   *handler.InventoryHandler
	Orders      *handler.OrderHandler
	Auth        *handler.AuthHandler
	System      *handler.SystemHandler
	CORSOrigins []string
}

// New builds the gin engine with all middleware and routes registered
func New(deps Dependencies) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
		middleware.Secure(),
		middleware.CORSWithOrigins(deps.CORSOrigins),
	)

	engine.GET("/", deps.System.Banner)
	engine.GET("/health", deps.System.Health)

	api := engine.Group("/api/v1")
	api.GET("/health", deps.System.Health)

	requireAuth := middleware.RequireAuth(deps.JWTService)
	requireAdmin := middleware.RequireAdmin()
	optionalAuth := middleware.OptionalAuth(deps.JWTService)

	products := api.Group("/products")
	{
		products.GET("", optionalAuth, deps.Products.List)
		products.GET("/:id", optionalAuth, deps.Products.Get)
		products.POST("", requireAuth, requireAdmin, deps.Products.Create)
		products.PUT("/:id", requireAuth, requireAdmin, deps.Products.Update)
		products.DELETE("/:id", requireAuth, requireAdmin, deps.Products.Delete)

		products.GET("/:id/inventory", requireAuth, requireAdmin, deps.Inventory.Logs)
		products.POST("/:id/inventory/adjust", requireAuth, requireAdmin, deps.Inventory.Adjust)
	}

	api.GET("/inventory/low-stock", requireAuth, requireAdmin, deps.Inventory.LowStock)

	orders := api.Group("/orders")
	{
		// guests can check out; an authenticated user gets attached to the order
		orders.POST("", optionalAuth, deps.Orders.Create)
		orders.GET("", requireAuth, requireAdmin, deps.Orders.List)
		orders.GET("/stats/summary", requireAuth, requireAdmin, deps.Orders.Stats)
		orders.GET("/:id", requireAuth, requireAdmin, deps.Orders.Get)
		orders.PUT("/:id", requireAuth, requireAdmin, deps.Orders.Update)
	}

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", deps.Auth.Register)
		authRoutes.POST("/login", deps.Auth.Login)
		authRoutes.GET("/session", requireAuth, deps.Auth.Me)
		authRoutes.GET("/me", requireAuth, deps.Auth.Me)
		authRoutes.GET("/google", deps.Auth.GoogleLogin)
		authRoutes.GET("/google/callback", deps.Auth.GoogleCallback)
	}

	return engine
}
