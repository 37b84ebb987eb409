package ledger

import (
	"context" // Context for storage operations
	"fmt"     // Error wrapping

	"earning_admin/internal/domain" // Importing domain models
	"earning_admin/internal/store"  // Skip sentinel

	"github.com/shopspring/decimal" // Decimal balances
	"github.com/sirupsen/logrus"    // Logging library
)

// UserEdit carries the admin-editable user fields
type UserEdit struct {
	ID      int64           // User to edit
	Name    string          // New name
	Phone   string          // New phone
	Balance decimal.Decimal // New balance, taken verbatim
	Plan    string          // New plan name
}

// SaveUser overwrites the editable fields of an existing user
func (s *Service) SaveUser(ctx context.Context, edit UserEdit) (*domain.User, error) {
	var result *domain.User
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		user := doc.FindUserByID(edit.ID)
		if user == nil {
			return fmt.Errorf("%w: id %d", ErrUserNotFound, edit.ID)
		}
		user.Name = edit.Name
		user.Phone = edit.Phone
		user.Balance = edit.Balance
		user.Plan = edit.Plan
		snapshot := *user
		result = &snapshot
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": edit.ID,      // Edited user
		"balance": edit.Balance, // Balance written by the admin
	}).Info("User updated")
	return result, nil
}

// DeleteUser removes the user with the given id and reports whether one was removed
func (s *Service) DeleteUser(ctx context.Context, id int64) (bool, error) {
	removed := false
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		kept := doc.Users[:0:0] // Fresh backing array
		for _, u := range doc.Users {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		removed = len(kept) != len(doc.Users)
		if !removed {
			return store.ErrSkip
		}
		doc.Users = kept
		return nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		logrus.WithField("user_id", id).Info("User deleted")
	}
	return removed, nil
}
