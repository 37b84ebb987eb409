package domain

import "encoding/json" // Model encoding

// Declared member names per model; everything else lands in Extra
var (
	documentFields = jsonFields(Document{})
	userFields     = jsonFields(User{})
	depositFields  = jsonFields(Deposit{})
	withdrawFields = jsonFields(Withdraw{})
	planFields     = jsonFields(Plan{})
	settingsFields = jsonFields(Settings{})
)

// MarshalJSON encodes the declared members followed by the extra ones
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	b, err := json.Marshal(plain(d))
	if err != nil {
		return nil, err
	}
	return appendExtra(b, d.Extra)
}

// UnmarshalJSON decodes the declared members and keeps the rest in Extra
func (d *Document) UnmarshalJSON(b []byte) error {
	type plain Document
	if err := json.Unmarshal(b, (*plain)(d)); err != nil {
		return err
	}
	extra, err := splitExtra(b, documentFields)
	d.Extra = extra
	return err
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	b, err := json.Marshal(plain(u))
	if err != nil {
		return nil, err
	}
	return appendExtra(b, u.Extra)
}

func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	if err := json.Unmarshal(b, (*plain)(u)); err != nil {
		return err
	}
	extra, err := splitExtra(b, userFields)
	u.Extra = extra
	return err
}

func (dep Deposit) MarshalJSON() ([]byte, error) {
	type plain Deposit
	b, err := json.Marshal(plain(dep))
	if err != nil {
		return nil, err
	}
	return appendExtra(b, dep.Extra)
}

func (dep *Deposit) UnmarshalJSON(b []byte) error {
	type plain Deposit
	if err := json.Unmarshal(b, (*plain)(dep)); err != nil {
		return err
	}
	extra, err := splitExtra(b, depositFields)
	dep.Extra = extra
	return err
}

func (w Withdraw) MarshalJSON() ([]byte, error) {
	type plain Withdraw
	b, err := json.Marshal(plain(w))
	if err != nil {
		return nil, err
	}
	return appendExtra(b, w.Extra)
}

func (w *Withdraw) UnmarshalJSON(b []byte) error {
	type plain Withdraw
	if err := json.Unmarshal(b, (*plain)(w)); err != nil {
		return err
	}
	extra, err := splitExtra(b, withdrawFields)
	w.Extra = extra
	return err
}

func (p Plan) MarshalJSON() ([]byte, error) {
	type plain Plan
	b, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	return appendExtra(b, p.Extra)
}

func (p *Plan) UnmarshalJSON(b []byte) error {
	type plain Plan
	if err := json.Unmarshal(b, (*plain)(p)); err != nil {
		return err
	}
	extra, err := splitExtra(b, planFields)
	p.Extra = extra
	return err
}

func (s Settings) MarshalJSON() ([]byte, error) {
	type plain Settings
	b, err := json.Marshal(plain(s))
	if err != nil {
		return nil, err
	}
	return appendExtra(b, s.Extra)
}

func (s *Settings) UnmarshalJSON(b []byte) error {
	type plain Settings
	if err := json.Unmarshal(b, (*plain)(s)); err != nil {
		return err
	}
	extra, err := splitExtra(b, settingsFields)
	s.Extra = extra
	return err
}
