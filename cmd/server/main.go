package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/balmstore/backend/internal/application/catalog"
	identityapp "github.com/balmstore/backend/internal/application/identity"
	inventoryapp "github.com/balmstore/backend/internal/application/inventory"
	orderapp "github.com/balmstore/backend/internal/application/order"
	"github.com/balmstore/backend/internal/infrastructure/auth"
	"github.com/balmstore/backend/internal/infrastructure/config"
	"github.com/balmstore/backend/internal/infrastructure/email"
	"github.com/balmstore/backend/internal/infrastructure/logger"
	"github.com/balmstore/backend/internal/infrastructure/oauth"
	"github.com/balmstore/backend/internal/infrastructure/persistence"
	"github.com/balmstore/backend/internal/interfaces/http/handler"
	"github.com/balmstore/backend/internal/interfaces/http/router"
)

// version is stamped at build time via -ldflags
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting store backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := db.SeedAdmin(context.Background(), cfg.Admin, log); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	logRepo := persistence.NewGormInventoryLogRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Optional integrations. The interfaces must stay nil when disabled, so
	// the concrete nil pointers are never assigned directly.
	var google identityapp.GoogleProvider
	if provider := oauth.NewGoogleProvider(cfg.Google); provider != nil {
		google = provider
		log.Info("Google login enabled")
	}
	var mailer orderapp.ConfirmationMailer
	if resend := email.NewResendMailer(cfg.Email, log); resend != nil {
		mailer = resend
		log.Info("Order confirmation emails enabled", zap.String("from", cfg.Email.FromEmail))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	ledgerService := inventoryapp.NewLedgerService(productRepo, logRepo, txScope)
	productService := catalogapp.NewProductService(productRepo, ledgerService)
	orderService := orderapp.NewOrderService(orderRepo, ledgerService, mailer, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, google, log)

	engine := router.New(router.Dependencies{
		Logger:      log,
		JWTService:  jwtService,
		Products:    handler.NewProductHandler(productService),
		Inventory:   handler.NewInventoryHandler(ledgerService),
		Orders:      handler.NewOrderHandler(orderService),
		Auth:        handler.NewAuthHandler(authService, cfg.App.FrontendURL),
		System:      handler.NewSystemHandler(db, cfg.App.Name, version),
		CORSOrigins: cfg.HTTP.CORSAllowOrigins,
	})
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
