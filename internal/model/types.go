// Package model defines the typed records exchanged with the finance backend.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is implemented by every resource record shown in a list page.
type Record interface {
	// RecordID returns the server-assigned identifier used in item paths.
	RecordID() ID
	// Field returns the display value of a named attribute, or "" if unknown.
	Field(name string) string
}

// ID is an opaque, server-assigned identifier. The backend emits both
// numeric and string identifiers, so both are accepted on the wire.
type ID string

// String returns the identifier text.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// UnmarshalJSON accepts JSON strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric-looking identifiers as numbers so the backend
// receives the same shape it produced.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Number is a decimal amount. Numeric database columns are frequently
// serialized as strings ("500.00"), so both forms decode.
type Number float64

// Float returns the value as float64.
func (n Number) Float() float64 {
	return float64(n)
}

// String formats the number without trailing zeros.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// UnmarshalJSON accepts JSON numbers, numeric strings, empty strings and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*n = 0
			return nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", text, err)
	}
	*n = Number(f)
	return nil
}

// Float returns a pointer to f, for optional numeric draft fields.
func Float(f float64) *float64 {
	return &f
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}
