package main

import (
	"notes_system/internal/config" // Custom import path (Config)
	"notes_system/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Main entry point for migration and seeding
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Open a connection to the database
	gdb, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// Create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	// Create the demo accounts if they are absent
	if err := db.Seed(gdb, cfg.JWTSecret); err != nil {
		logrus.Fatalf("seed failed: %v", err) // Log fatal error if seeding fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
