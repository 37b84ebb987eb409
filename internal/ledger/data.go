package ledger

import (
	"bytes"         // Detecting empty uploads
	"context"       // Context for storage operations
	"encoding/json" // Document encoding
	"fmt"           // Error wrapping

	"earning_admin/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
)

// ExportFileName is the download name of an exported document
const ExportFileName = "earningAppDB_backup.json"

// Export returns the whole document as pretty-printed JSON
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import replaces the whole document with the decoded data
func (s *Service) Import(ctx context.Context, data []byte) (*domain.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidDocument)
	}
	imported := domain.NewDocument()
	if err := json.Unmarshal(data, imported); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	imported.Normalize()
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		*doc = *imported
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"users":     len(imported.Users),     // Imported users
		"deposits":  len(imported.Deposits),  // Imported deposits
		"withdraws": len(imported.Withdraws), // Imported withdraws
		"plans":     len(imported.Plans),     // Imported plans
	}).Info("Document imported")
	return imported, nil
}

// Reset erases the document once the exact confirmation phrase is given
func (s *Service) Reset(ctx context.Context, phrase string) error {
	if phrase != ResetPhrase {
		return ErrResetPhrase
	}
	if err := s.store.DeleteDocument(ctx); err != nil {
		return err
	}
	logrus.Warn("Document reset")
	return nil
}
