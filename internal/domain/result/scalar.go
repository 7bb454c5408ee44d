package result

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// SauceNAO is inconsistent about quoting header scalars ("6" vs 6), so the
// wire types below accept both forms. Unparseable values decode to zero.

// Float decodes a JSON number or a numeric string.
type Float float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseFloat(unquote(b), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = Float(v)
	return nil
}

// Int decodes a JSON number or a numeric string.
type Int int

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if v, err := strconv.Atoi(s); err == nil {
		*i = Int(v)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*i = Int(v)
		return nil
	}
	*i = 0
	return nil
}

// String decodes a JSON string or the literal text of any other scalar.
type String string

// UnmarshalJSON implements json.Unmarshaler.
func (s *String) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = String(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = String(b)
	return nil
}

func unquote(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	return string(b)
}
