package main

import (
	"fmt"
	"log"

	"order_portal/internal/config"
	"order_portal/internal/database"
	"order_portal/internal/logger"
	"order_portal/internal/migrations"
	"order_portal/internal/models"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	zlog, err := logger.Init(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.OrderItem{},
		&models.Order{},
		&models.SKU{},
		&models.Product{},
		&models.Brand{},
		&models.User{},
		&models.Credential{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Recreate schema and seed the default super admin
	if err := migrations.RunMigrations(db, zlog); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Database initialized.")
	fmt.Println("Super admin: admin@example.com / admin123")
}
