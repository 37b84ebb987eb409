package domain

import "encoding/json" // Raw member values

// Timestamp keeps a request date exactly as the user app wrote it. The app
// writes ISO strings or epoch milliseconds; the admin never rewrites either.
type Timestamp json.RawMessage

// MarshalJSON returns the stored bytes, or null when there are none
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if len(t) == 0 {
		return []byte("null"), nil
	}
	return t, nil
}

// UnmarshalJSON stores a copy of any JSON value
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = append((*t)[:0], b...)
	return nil
}
