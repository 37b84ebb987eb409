package domain

import "github.com/shopspring/decimal" // Exact decimal arithmetic for balances

// NoPlan is the plan value of a user without a subscription
const NoPlan = "None"

// User Model
type User struct {
	ID            int64           `json:"id"`            // Unique user ID
	Name          string          `json:"name"`          // Display name
	Phone         string          `json:"phone"`         // Phone number, referenced by deposits and withdraws
	Balance       decimal.Decimal `json:"balance"`       // Spendable balance
	TotalDeposit  decimal.Decimal `json:"totalDeposit"`  // Cumulative approved deposits
	TotalWithdraw decimal.Decimal `json:"totalWithdraw"` // Cumulative approved withdrawals
	Plan          string          `json:"plan"`          // Active plan name or "None"
	Extra         Extra           `json:"-"`             // Members owned by the user app
}

// HasPlan reports whether the user is subscribed to a plan
func (u User) HasPlan() bool {
	return u.Plan != "" && u.Plan != NoPlan
}
