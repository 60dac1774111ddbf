package db

import (
	"errors" // Error matching

	"notes_system/internal/domain" // Importing domain models
	"notes_system/internal/utils"  // JWT utility functions

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// AutoMigrate creates tables, missing foreign keys, constraints, columns and
// indexes for the schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Note{})
}

// Seed creates the demo accounts the training exercises rely on. It is a
// no-op when the admin account already exists, so it is safe to run at every
// start.
func Seed(db *gorm.DB, jwtSecret string) error {
	var admin domain.User // Check whether the admin account exists
	err := db.Where("username = ?", "admin").First(&admin).Error
	if err == nil {
		return nil // Already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err // Unexpected store fault
	}
	// Demo accounts; credentials are intentionally weak and published in the
	// exercise material
	demo := []domain.User{
		{Username: "admin", Email: "admin@example.com", Password: "admin123", Role: "admin"},
		{Username: "user1", Email: "user1@example.com", Password: "password123", Role: "user"},
	}
	for i := range demo {
		// Create the account
		if err := db.Create(&demo[i]).Error; err != nil {
			return err
		}
		// Issue and store a session token for it
		token, err := utils.GenerateJWT(demo[i].ID, demo[i].Role, jwtSecret)
		if err != nil {
			return err
		}
		if err := db.Model(&demo[i]).Update("jwt_token", token).Error; err != nil {
			return err
		}
	}
	logrus.Info("Database seeded with demo users") // Log successful seed
	return nil
}
