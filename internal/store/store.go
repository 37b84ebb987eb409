// Package store persists the shared document and the admin credential keys
// as versioned key/value rows.
package store

import (
	"context"       // Context for database operations
	"encoding/json" // JSON encoding/decoding of the document
	"errors"        // Sentinel errors
	"fmt"           // Error wrapping
	"time"          // Update timestamps

	"earning_admin/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Conflict clauses for upserts
)

// Well-known keys shared with the user app
const (
	DocumentKey = "earningAppDB"  // The whole document
	PasswordKey = "adminPassword" // Admin password hash
)

var (
	// ErrVersionConflict is returned when the stored version moved since Load
	ErrVersionConflict = errors.New("document was modified by another session")
	// ErrSkip lets a mutation finish without writing anything
	ErrSkip = errors.New("nothing to save")
)

// Entry Model
type Entry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:64"` // Storage key
	Value     string `gorm:"type:longtext;not null"`              // Stored value
	Version   int64  `gorm:"not null;default:0"`                  // Bumped on every write
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`                // Last write in milliseconds
}

// TableName keeps the table name independent of the struct name
func (Entry) TableName() string {
	return "kv_entries"
}

// NewDocumentEntry encodes doc as the first version of the document entry
func NewDocumentEntry(doc *domain.Document) (*Entry, error) {
	b, err := json.Marshal(doc) // Compact JSON, as stored by the user app
	if err != nil {
		return nil, err
	}
	return &Entry{Key: DocumentKey, Value: string(b), Version: 1}, nil
}

// Mutation edits a freshly loaded document in place
type Mutation func(doc *domain.Document) error

// Store reads and writes entries through GORM
type Store struct {
	db         *gorm.DB // Database handle
	maxRetries int      // Update attempts on version conflict
}

// New creates a Store; maxRetries below 1 means a single attempt
func New(db *gorm.DB, maxRetries int) *Store {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Store{db: db, maxRetries: maxRetries}
}

// GetValue returns the value stored under key and whether it exists
func (s *Store) GetValue(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil // Missing key is not an error
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// PutValue writes value under key, creating or overwriting it
func (s *Store) PutValue(ctx context.Context, key, value string) error {
	entry := Entry{Key: key, Value: value, Version: 1, UpdatedAt: time.Now().UnixMilli()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.Assignments(map[string]any{"value": value, "version": gorm.Expr("version + 1"), "updated_at": entry.UpdatedAt}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys; missing keys are ignored
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("entry_key IN ?", keys).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("failed to delete %v: %w", keys, err)
	}
	return nil
}

// DeleteDocument erases the shared document
func (s *Store) DeleteDocument(ctx context.Context) error {
	return s.Delete(ctx, DocumentKey)
}

// Load returns the document and its version; a missing document is empty at version 0
func (s *Store) Load(ctx context.Context) (*domain.Document, int64, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where("entry_key = ?", DocumentKey).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewDocument(), 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load document: %w", err)
	}
	doc := domain.NewDocument()
	if err := json.Unmarshal([]byte(entry.Value), doc); err != nil {
		return nil, 0, fmt.Errorf("failed to decode document: %w", err)
	}
	doc.Normalize() // Stored null collections become empty
	return doc, entry.Version, nil
}

// Save writes doc if the stored version still equals version
func (s *Store) Save(ctx context.Context, doc *domain.Document, version int64) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	now := time.Now().UnixMilli()
	if version == 0 {
		// First write: insert unless another session inserted first
		entry := Entry{Key: DocumentKey, Value: string(b), Version: 1, UpdatedAt: now}
		res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
		if res.Error != nil {
			return fmt.Errorf("failed to save document: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return nil
	}
	res := s.db.WithContext(ctx).
		Model(&Entry{}).
		Where("entry_key = ? AND version = ?", DocumentKey, version).
		Updates(map[string]any{"value": string(b), "version": version + 1, "updated_at": now})
	if res.Error != nil {
		return fmt.Errorf("failed to save document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Update runs load, fn and save, repeating the cycle on a version conflict.
// A mutation returning ErrSkip ends the cycle without a write.
func (s *Store) Update(ctx context.Context, fn Mutation) error {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		doc, version, err := s.Load(ctx)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			if errors.Is(err, ErrSkip) {
				return nil
			}
			return err
		}
		err = s.Save(ctx, doc, version)
		if !errors.Is(err, ErrVersionConflict) {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"attempt": attempt, // Attempt number
			"version": version, // Version the mutation was based on
		}).Warn("Document version conflict")
	}
	return ErrVersionConflict
}
