package domain

import "github.com/shopspring/decimal"

func init() {
	// Amounts are stored as JSON numbers, the shape the user app writes.
	decimal.MarshalJSONWithoutQuotes = true
}

// Document is the single aggregate shared with the user app
type Document struct {
	Users     []User     `json:"users"`     // Registered users
	Deposits  []Deposit  `json:"deposits"`  // Deposit requests
	Withdraws []Withdraw `json:"withdraws"` // Withdraw requests
	Plans     []Plan     `json:"plans"`     // Subscription plans
	Settings  Settings   `json:"settings"`  // Platform settings
	Extra     Extra      `json:"-"`         // Collections kept by the user app only
}

// NewDocument returns the minimal document used when nothing is stored yet
func NewDocument() *Document {
	return &Document{
		Users:     []User{},
		Deposits:  []Deposit{},
		Withdraws: []Withdraw{},
		Plans:     []Plan{},
		Settings:  Settings{PaymentMethods: map[string]string{}},
	}
}

// Normalize replaces nil collections so the document always encodes as arrays and objects
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Deposits == nil {
		d.Deposits = []Deposit{}
	}
	if d.Withdraws == nil {
		d.Withdraws = []Withdraw{}
	}
	if d.Plans == nil {
		d.Plans = []Plan{}
	}
	if d.Settings.PaymentMethods == nil {
		d.Settings.PaymentMethods = map[string]string{}
	}
}

// FindUserByID returns a pointer into the users slice, or nil
func (d *Document) FindUserByID(id int64) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// FindUserByPhone returns the first user with the given phone, or nil
func (d *Document) FindUserByPhone(phone string) *User {
	for i := range d.Users {
		if d.Users[i].Phone == phone {
			return &d.Users[i]
		}
	}
	return nil
}

// FindDeposit returns a pointer into the deposits slice, or nil
func (d *Document) FindDeposit(id int64) *Deposit {
	for i := range d.Deposits {
		if d.Deposits[i].ID == id {
			return &d.Deposits[i]
		}
	}
	return nil
}

// FindWithdraw returns a pointer into the withdraws slice, or nil
func (d *Document) FindWithdraw(id int64) *Withdraw {
	for i := range d.Withdraws {
		if d.Withdraws[i].ID == id {
			return &d.Withdraws[i]
		}
	}
	return nil
}

// FindPlan returns a pointer into the plans slice, or nil
func (d *Document) FindPlan(id int64) *Plan {
	for i := range d.Plans {
		if d.Plans[i].ID == id {
			return &d.Plans[i]
		}
	}
	return nil
}

// Stats summarises the document for the dashboard
type Stats struct {
	TotalUsers       int             `json:"totalUsers"`       // Number of users
	TotalDeposits    decimal.Decimal `json:"totalDeposits"`    // Sum of approved deposits
	TotalWithdraws   decimal.Decimal `json:"totalWithdraws"`   // Sum of approved withdraws
	PendingDeposits  int             `json:"pendingDeposits"`  // Deposits awaiting review
	PendingWithdraws int             `json:"pendingWithdraws"` // Withdraws awaiting review
	ActivePlans      int             `json:"activePlans"`      // Users with a plan
}
