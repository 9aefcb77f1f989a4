package database

import (
	"fmt"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	"github.com/naitfess/prak-tpm-projek-akhir/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connection established successfully")
	return nil
}

// AutoMigrate runs automatic migrations for all models. Teams and users
// come first so the match and prediction constraints have their targets.
func AutoMigrate() error {
	return Migrate(DB)
}

// Migrate applies the schema to the given database handle.
func Migrate(db *gorm.DB) error {
	entities := []interface{}{
		&models.User{},
		&models.Team{},
		&models.Match{},
		&models.Prediction{},
		&models.News{},
		&models.SettlementRecord{},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			return fmt.Errorf("migration failed for %T: %w", entity, err)
		}
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
