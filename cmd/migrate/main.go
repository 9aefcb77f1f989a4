package main

import (
	"context"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/config"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/database"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/services"
)

// Applies the schema and seeds the admin account. Run before serving
// traffic; safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	authService := services.NewAuthService(db)
	if err := authService.EnsureAdmin(context.Background(), cfg.App.AdminUsername, cfg.App.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	log.Println("Migrations applied successfully")
}
