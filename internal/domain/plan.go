package domain

import "github.com/shopspring/decimal"

// Plan Model
type Plan struct {
	ID       int64           `json:"id"`       // Plan ID
	Name     string          `json:"name"`     // Plan name
	Price    decimal.Decimal `json:"price"`    // Purchase price
	Reward   decimal.Decimal `json:"reward"`   // Reward paid by the plan
	Validity int             `json:"validity"` // Validity in days
	Extra    Extra           `json:"-"`        // Undeclared members
}

// Settings Model
type Settings struct {
	Announcement   string            `json:"announcement"`   // Banner text shown to users
	PaymentMethods map[string]string `json:"paymentMethods"` // Method name to address or number
	Extra          Extra             `json:"-"`              // Undeclared members
}
