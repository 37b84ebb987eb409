package ledger

import (
	"context" // Context for storage operations

	"earning_admin/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Exact decimal sums
)

// CompletedLimit caps the completed list of a transaction view
const CompletedLimit = 20

// DepositView splits deposits into the review queue and recent history, newest first
type DepositView struct {
	Pending   []domain.Deposit `json:"pending"`
	Completed []domain.Deposit `json:"completed"`
}

// WithdrawView splits withdraws into the review queue and recent history, newest first
type WithdrawView struct {
	Pending   []domain.Withdraw `json:"pending"`
	Completed []domain.Withdraw `json:"completed"`
}

// Stats computes the dashboard counters
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	stats := domain.Stats{
		TotalUsers:     len(doc.Users),
		TotalDeposits:  decimal.Zero,
		TotalWithdraws: decimal.Zero,
	}
	for _, d := range doc.Deposits {
		switch d.Status {
		case domain.StatusApproved:
			stats.TotalDeposits = stats.TotalDeposits.Add(d.Amount)
		case domain.StatusPending:
			stats.PendingDeposits++
		}
	}
	for _, w := range doc.Withdraws {
		switch w.Status {
		case domain.StatusApproved:
			stats.TotalWithdraws = stats.TotalWithdraws.Add(w.Amount)
		case domain.StatusPending:
			stats.PendingWithdraws++
		}
	}
	for _, u := range doc.Users {
		if u.HasPlan() {
			stats.ActivePlans++
		}
	}
	return stats, nil
}

// Users lists all users in stored order
func (s *Service) Users(ctx context.Context) ([]domain.User, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// Plans lists all plans in stored order
func (s *Service) Plans(ctx context.Context) ([]domain.Plan, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Plans, nil
}

// Settings returns the platform settings
func (s *Service) Settings(ctx context.Context) (domain.Settings, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return doc.Settings, nil
}

// Deposits returns the deposit review view
func (s *Service) Deposits(ctx context.Context) (DepositView, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return DepositView{}, err
	}
	view := DepositView{Pending: []domain.Deposit{}, Completed: []domain.Deposit{}}
	// Walk backwards so the newest request comes first
	for i := len(doc.Deposits) - 1; i >= 0; i-- {
		d := doc.Deposits[i]
		if d.Status == domain.StatusPending {
			view.Pending = append(view.Pending, d)
		} else if len(view.Completed) < CompletedLimit {
			view.Completed = append(view.Completed, d)
		}
	}
	return view, nil
}

// Withdraws returns the withdraw review view
func (s *Service) Withdraws(ctx context.Context) (WithdrawView, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return WithdrawView{}, err
	}
	view := WithdrawView{Pending: []domain.Withdraw{}, Completed: []domain.Withdraw{}}
	for i := len(doc.Withdraws) - 1; i >= 0; i-- {
		w := doc.Withdraws[i]
		if w.Status == domain.StatusPending {
			view.Pending = append(view.Pending, w)
		} else if len(view.Completed) < CompletedLimit {
			view.Completed = append(view.Completed, w)
		}
	}
	return view, nil
}
