package database

import (
	"log"
	"os"

	"github.com/pawprints/pawprints-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase() *gorm.DB {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	// TranslateError maps driver unique-violations to gorm.ErrDuplicatedKey,
	// so duplicate emails and tag-rename collisions surface as conflicts.
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Photo{},
		&models.Tag{},
		&models.Comment{},
	); err != nil {
		return err
	}

	// Promote the bootstrap admin if configured. Safe to run on every start.
	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" {
		if err := db.Model(&models.User{}).
			Where("email = ? AND role <> ?", adminEmail, models.RoleAdmin).
			Update("role", models.RoleAdmin).Error; err != nil {
			return err
		}
	}

	return nil
}
