package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList stores a JSON array of strings in a single text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// KeywordCounts stores the running keyword-frequency map of an AI session.
type KeywordCounts map[string]int

func (k KeywordCounts) Value() (driver.Value, error) {
	if k == nil {
		return nil, nil
	}
	return json.Marshal(k)
}

func (k *KeywordCounts) Scan(value interface{}) error {
	return scanJSON(value, k)
}

// Metadata is an opaque JSON object attached to transcript entries.
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported column type for JSON value")
	}
}
