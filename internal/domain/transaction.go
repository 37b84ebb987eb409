package domain

import "github.com/shopspring/decimal" // Exact decimal arithmetic for amounts

// Status is the lifecycle state of a deposit or withdraw request
type Status string

const (
	StatusPending  Status = "Pending"  // Awaiting an admin decision
	StatusApproved Status = "Approved" // Terminal: balance effect applied
	StatusRejected Status = "Rejected" // Terminal: no balance effect
)

// IsTerminal reports whether no further transition is allowed
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Deposit Model
type Deposit struct {
	ID        int64           `json:"id"`              // Deposit ID
	UserPhone string          `json:"userPhone"`       // Phone of the depositing user
	Amount    decimal.Decimal `json:"amount"`          // Deposited amount
	Method    string          `json:"method"`          // Payment method name
	TrxID     string          `json:"trxId,omitempty"` // Optional payment reference
	Date      Timestamp       `json:"date,omitempty"`  // Submission time as written by the user app
	Status    Status          `json:"status"`          // Pending, Approved or Rejected
	Extra     Extra           `json:"-"`               // Members owned by the user app
}

// Withdraw Model
type Withdraw struct {
	ID        int64           `json:"id"`             // Withdraw ID
	UserPhone string          `json:"userPhone"`      // Phone of the requesting user
	Amount    decimal.Decimal `json:"amount"`         // Requested amount
	Method    string          `json:"method"`         // Payout method name
	Wallet    string          `json:"wallet"`         // Payout address or number
	Date      Timestamp       `json:"date,omitempty"` // Submission time as written by the user app
	Status    Status          `json:"status"`         // Pending, Approved or Rejected
	Extra     Extra           `json:"-"`              // Members owned by the user app
}
