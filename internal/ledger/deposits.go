package ledger

import (
	"context" // Context for storage operations
	"fmt"     // Error wrapping

	"earning_admin/internal/domain" // Importing domain models
	"earning_admin/internal/store"  // Skip sentinel

	"github.com/sirupsen/logrus" // Logging library
)

// ApproveDeposit credits the deposit amount to the owning user and marks it Approved.
// A missing deposit is a no-op and returns (nil, nil).
func (s *Service) ApproveDeposit(ctx context.Context, id int64) (*domain.Deposit, error) {
	var result *domain.Deposit
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		result = nil // Reset on retry
		deposit := doc.FindDeposit(id)
		if deposit == nil {
			return store.ErrSkip
		}
		snapshot := *deposit
		result = &snapshot
		if deposit.Status.IsTerminal() {
			return ErrAlreadyProcessed
		}
		user := doc.FindUserByPhone(deposit.UserPhone)
		if user == nil {
			return fmt.Errorf("%w: no user with phone %s", ErrUserNotFound, deposit.UserPhone)
		}
		deposit.Status = domain.StatusApproved
		user.Balance = user.Balance.Add(deposit.Amount)
		user.TotalDeposit = user.TotalDeposit.Add(deposit.Amount)
		snapshot = *deposit
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"deposit_id": id,          // Deposit ID
			"error":      err.Error(), // Error message
		}).Warn("Deposit approval failed")
		return result, err
	}
	if result != nil {
		logrus.WithFields(logrus.Fields{
			"deposit_id": id,               // Deposit ID
			"user_phone": result.UserPhone, // Credited user
			"amount":     result.Amount,    // Credited amount
		}).Info("Deposit approved")
	}
	return result, nil
}

// RejectDeposit marks a pending deposit Rejected without touching any balance
func (s *Service) RejectDeposit(ctx context.Context, id int64) (*domain.Deposit, error) {
	var result *domain.Deposit
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		result = nil
		deposit := doc.FindDeposit(id)
		if deposit == nil {
			return store.ErrSkip
		}
		if deposit.Status.IsTerminal() {
			snapshot := *deposit
			result = &snapshot
			return ErrAlreadyProcessed
		}
		deposit.Status = domain.StatusRejected
		snapshot := *deposit
		result = &snapshot
		return nil
	})
	if err != nil {
		return result, err
	}
	if result != nil {
		logrus.WithField("deposit_id", id).Info("Deposit rejected")
	}
	return result, nil
}
