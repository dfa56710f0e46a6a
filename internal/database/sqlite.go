package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to an existing SQLite snapshot exported by the game client.
// A missing file is an error rather than a fresh empty database.
func Open(path string) (*gorm.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}

	// One cursor at a time; the export is strictly sequential.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection for %s: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Database: opened %s", path)
	return db, nil
}

// Close releases the connection behind db. Errors are logged, not returned,
// since callers close on their way out of a failed run.
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Database: failed to get connection to close: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Database: failed to close connection: %v", err)
	}
}
