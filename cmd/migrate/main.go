package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/balmstore/backend/internal/infrastructure/config"
	"github.com/balmstore/backend/internal/infrastructure/logger"
	"github.com/balmstore/backend/internal/infrastructure/persistence"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema is up to date", zap.String("driver", cfg.Database.Driver))

	case "seed":
		if err := db.Migrate(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
			log.Fatal("Admin credentials not configured. Set STORE_ADMIN_EMAIL and STORE_ADMIN_PASSWORD.")
		}
		if err := db.SeedAdmin(context.Background(), cfg.Admin, log); err != nil {
			log.Fatal("Admin seeding failed", zap.Error(err))
		}
		log.Info("Admin account ready", zap.String("email", cfg.Admin.Email))

	case "ping":
		if err := db.Ping(); err != nil {
			log.Fatal("Database unreachable", zap.Error(err))
		}
		log.Info("Database reachable", zap.String("driver", cfg.Database.Driver))

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Store Database Migration Tool

Usage:
  migrate [flags] <command>

Commands:
  up      Create or update the schema
  seed    Run migrations and create the admin account
  ping    Verify the database connection

Flags:
  -log-level string   Log level: debug, info, warn, error (default: info)

Configuration comes from config.toml and STORE_* environment variables,
the same sources the server uses.`)
}
