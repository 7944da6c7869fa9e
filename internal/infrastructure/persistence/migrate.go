package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/balmstore/backend/internal/domain/catalog"
	"github.com/balmstore/backend/internal/domain/identity"
	"github.com/balmstore/backend/internal/domain/inventory"
	"github.com/balmstore/backend/internal/domain/order"
	"github.com/balmstore/backend/internal/domain/shared"
	"github.com/balmstore/backend/internal/infrastructure/config"
)

// Migrate creates or updates the database schema for all domain models
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(
		&catalog.Product{},
		&inventory.InventoryLog{},
		&order.Order{},
		&identity.User{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SeedAdmin ensures an admin account exists for the configured email.
// An existing user is promoted to admin rather than recreated.
func (d *Database) SeedAdmin(ctx context.Context, cfg config.AdminConfig, logger *zap.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		logger.Info("Admin seeding skipped, no admin credentials configured")
		return nil
	}

	users := NewGormUserRepository(d.DB)

	existing, err := users.FindByEmail(ctx, cfg.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	if existing != nil {
		if existing.IsAdmin {
			return nil
		}
		existing.IsAdmin = true
		if err := users.Save(ctx, existing); err != nil {
			return fmt.Errorf("failed to promote admin user: %w", err)
		}
		logger.Info("Existing user promoted to admin", zap.String("email", cfg.Email))
		return nil
	}

	admin, err := identity.NewUser(cfg.Email, cfg.Password, cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	admin.IsAdmin = true

	if err := users.Save(ctx, admin); err != nil {
		return fmt.Errorf("failed to save admin user: %w", err)
	}
	logger.Info("Admin user created", zap.String("email", cfg.Email))
	return nil
}
