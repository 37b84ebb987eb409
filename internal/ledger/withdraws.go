package ledger

import (
	"context" // Context for storage operations
	"fmt"     // Error wrapping

	"earning_admin/internal/domain" // Importing domain models
	"earning_admin/internal/store"  // Skip sentinel

	"github.com/sirupsen/logrus" // Logging library
)

// ApproveWithdraw debits the withdraw amount from the owning user and marks it Approved.
// The balance is checked again against the stored state; when it no longer covers
// the amount the withdraw is rejected instead, and the rejected withdraw is returned
// together with ErrInsufficientBalance.
func (s *Service) ApproveWithdraw(ctx context.Context, id int64) (*domain.Withdraw, error) {
	var (
		result       *domain.Withdraw
		insufficient bool
	)
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		result, insufficient = nil, false // Reset on retry
		withdraw := doc.FindWithdraw(id)
		if withdraw == nil {
			return store.ErrSkip
		}
		if withdraw.Status.IsTerminal() {
			snapshot := *withdraw
			result = &snapshot
			return ErrAlreadyProcessed
		}
		user := doc.FindUserByPhone(withdraw.UserPhone)
		if user == nil {
			return fmt.Errorf("%w: no user with phone %s", ErrUserNotFound, withdraw.UserPhone)
		}
		if user.Balance.LessThan(withdraw.Amount) {
			withdraw.Status = domain.StatusRejected // Same effect as RejectWithdraw
			insufficient = true
		} else {
			withdraw.Status = domain.StatusApproved
			user.Balance = user.Balance.Sub(withdraw.Amount)
			user.TotalWithdraw = user.TotalWithdraw.Add(withdraw.Amount)
		}
		snapshot := *withdraw
		result = &snapshot
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"withdraw_id": id,          // Withdraw ID
			"error":       err.Error(), // Error message
		}).Warn("Withdraw approval failed")
		return result, err
	}
	if result == nil {
		return nil, nil
	}
	fields := logrus.Fields{
		"withdraw_id": id,               // Withdraw ID
		"user_phone":  result.UserPhone, // Debited user
		"amount":      result.Amount,    // Requested amount
	}
	if insufficient {
		logrus.WithFields(fields).Warn("Withdraw rejected on approval: insufficient balance")
		return result, ErrInsufficientBalance
	}
	logrus.WithFields(fields).Info("Withdraw approved")
	return result, nil
}

// RejectWithdraw marks a pending withdraw Rejected without touching any balance
func (s *Service) RejectWithdraw(ctx context.Context, id int64) (*domain.Withdraw, error) {
	var result *domain.Withdraw
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		result = nil
		withdraw := doc.FindWithdraw(id)
		if withdraw == nil {
			return store.ErrSkip
		}
		if withdraw.Status.IsTerminal() {
			snapshot := *withdraw
			result = &snapshot
			return ErrAlreadyProcessed
		}
		withdraw.Status = domain.StatusRejected
		snapshot := *withdraw
		result = &snapshot
		return nil
	})
	if err != nil {
		return result, err
	}
	if result != nil {
		logrus.WithField("withdraw_id", id).Info("Withdraw rejected")
	}
	return result, nil
}
