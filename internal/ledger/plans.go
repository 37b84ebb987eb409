package ledger

import (
	"context" // Context for storage operations
	"fmt"     // Error wrapping

	"earning_admin/internal/domain" // Importing domain models
	"earning_admin/internal/store"  // Skip sentinel

	"github.com/shopspring/decimal" // Decimal prices
	"github.com/sirupsen/logrus"    // Logging library
)

// PlanEdit carries plan fields; nil fields are left untouched on update
type PlanEdit struct {
	ID       int64            // Existing plan ID, 0 to create
	Name     *string          // Plan name
	Price    *decimal.Decimal // Plan price
	Reward   *decimal.Decimal // Plan reward
	Validity *int             // Validity in days
}

// apply copies the supplied fields onto p
func (e PlanEdit) apply(p *domain.Plan) {
	if e.Name != nil {
		p.Name = *e.Name
	}
	if e.Price != nil {
		p.Price = *e.Price
	}
	if e.Reward != nil {
		p.Reward = *e.Reward
	}
	if e.Validity != nil {
		p.Validity = *e.Validity
	}
}

// nextPlanID returns one more than the highest plan id, or 1 when there are none
func nextPlanID(plans []domain.Plan) int64 {
	var highest int64
	for _, p := range plans {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest + 1
}

// SavePlan merges edit into an existing plan, or appends a new plan when edit.ID is 0
func (s *Service) SavePlan(ctx context.Context, edit PlanEdit) (*domain.Plan, error) {
	var (
		result  *domain.Plan
		created bool
	)
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		if edit.ID != 0 {
			plan := doc.FindPlan(edit.ID)
			if plan == nil {
				return fmt.Errorf("%w: id %d", ErrPlanNotFound, edit.ID)
			}
			edit.apply(plan)
			snapshot := *plan
			result, created = &snapshot, false
			return nil
		}
		plan := domain.Plan{ID: nextPlanID(doc.Plans)}
		edit.apply(&plan)
		doc.Plans = append(doc.Plans, plan)
		result, created = &plan, true
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"plan_id": result.ID, // Saved plan
		"created": created,   // New or updated
	}).Info("Plan saved")
	return result, nil
}

// DeletePlan removes the plan with the given id and reports whether one was removed
func (s *Service) DeletePlan(ctx context.Context, id int64) (bool, error) {
	removed := false
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		kept := doc.Plans[:0:0]
		for _, p := range doc.Plans {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		removed = len(kept) != len(doc.Plans)
		if !removed {
			return store.ErrSkip
		}
		doc.Plans = kept
		return nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		logrus.WithField("plan_id", id).Info("Plan deleted")
	}
	return removed, nil
}
