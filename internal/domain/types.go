package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a []string stored as a JSONB array. A nil list persists and
// unmarshals as the empty array, never as SQL NULL, so consumers can treat
// moodboard likes and features as always-present sets.
type StringList []string

// Value implements the driver.Valuer interface for database/sql
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface for database/sql
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to unmarshal string list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// Contains reports membership
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// Toggle returns a copy with s removed if present, appended otherwise.
// Order of the remaining elements is preserved.
func (l StringList) Toggle(s string) StringList {
	if l.Contains(s) {
		out := make(StringList, 0, len(l)-1)
		for _, v := range l {
			if v != s {
				out = append(out, v)
			}
		}
		return out
	}
	out := make(StringList, len(l), len(l)+1)
	copy(out, l)
	return append(out, s)
}
