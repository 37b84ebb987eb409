package domain

import (
	"bytes"         // Building the merged object
	"encoding/json" // Raw member values
	"maps"          // Extra member names
	"reflect"       // Declared member names from struct tags
	"slices"        // Stable member order
	"strings"       // Tag parsing and name matching
)

// Extra holds the JSON members a model does not declare. The user app owns
// them and every write hands them back untouched.
type Extra map[string]json.RawMessage

// jsonFields lists the member names declared by the json tags of v's struct type
func jsonFields(v any) []string {
	t := reflect.TypeOf(v)
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// splitExtra returns the members of the object b that are not declared in known.
// Names are matched case-insensitively, as encoding/json does when decoding.
func splitExtra(b []byte, known []string) (Extra, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(b, &members); err != nil {
		return nil, err
	}
	for name := range members {
		if slices.ContainsFunc(known, func(k string) bool { return strings.EqualFold(k, name) }) {
			delete(members, name)
		}
	}
	if len(members) == 0 {
		return nil, nil
	}
	return Extra(members), nil
}

// appendExtra writes the extra members after the declared ones of the encoded object b
func appendExtra(b []byte, extra Extra) ([]byte, error) {
	if len(extra) == 0 {
		return b, nil
	}
	b = bytes.TrimRight(b, " \n")
	var buf bytes.Buffer
	buf.Write(b[:len(b)-1]) // Everything but the closing brace
	first := bytes.Equal(b, []byte("{}"))
	for _, name := range slices.Sorted(maps.Keys(extra)) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(extra[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
