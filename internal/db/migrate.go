package db

import (
	"earning_admin/internal/domain" // Importing domain models
	"earning_admin/internal/store"  // Key/value entries

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate creates the key/value table and seeds the empty document when none is stored
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&store.Entry{}); err != nil {
		logrus.Errorf("migration failed: %v", err) // Log migration failure
		return err
	}
	var count int64 // Number of stored documents
	if err := db.Model(&store.Entry{}).Where("entry_key = ?", store.DocumentKey).Count(&count).Error; err != nil {
		return err
	}
	// Seed the minimal document so the user app and admin start from the same shape
	if count == 0 {
		entry, err := store.NewDocumentEntry(domain.NewDocument())
		if err != nil {
			return err
		}
		if err := db.Create(entry).Error; err != nil {
			return err
		}
		logrus.Info("Seeded empty document.") // Log seeding
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
