// Package ledger applies admin decisions to the shared document: deposit and
// withdraw approvals, user and plan edits, settings, and whole-document
// export, import and reset.
package ledger

import (
	"context" // Context for storage operations
	"errors"  // Sentinel errors

	"earning_admin/internal/domain" // Importing domain models
	"earning_admin/internal/store"  // Mutation type and skip sentinel
)

// ResetPhrase must be typed exactly to erase the document
const ResetPhrase = "DELETE ALL"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrAlreadyProcessed    = errors.New("request already processed")
	ErrInsufficientBalance = errors.New("user's balance is insufficient")
	ErrResetPhrase         = errors.New("reset phrase does not match")
	ErrInvalidDocument     = errors.New("invalid document")
)

// DocumentStore loads and atomically updates the shared document
type DocumentStore interface {
	Load(ctx context.Context) (*domain.Document, int64, error)
	Update(ctx context.Context, fn store.Mutation) error
	DeleteDocument(ctx context.Context) error
}

// Service is the ledger mutator; every call is one load, mutate, save cycle
type Service struct {
	store DocumentStore // Injected persistence
}

// NewService creates a ledger service over the given store
func NewService(s DocumentStore) *Service {
	return &Service{store: s}
}

// load returns a fresh copy of the document for read-only views
func (s *Service) load(ctx context.Context) (*domain.Document, error) {
	doc, _, err := s.store.Load(ctx)
	return doc, err
}
