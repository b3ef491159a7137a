package repository

import (
	"encoding/json"
	"fmt"
	"strings"
)

// isUniqueViolation reports whether err is a unique-constraint failure.
// database/sql has no portable error code for this, so the driver
// messages are matched directly (sqlite, postgres, mysql).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}

// marshalStrings encodes a string slice for a TEXT column, never nil
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

// unmarshalStrings decodes a TEXT column written by marshalStrings
func unmarshalStrings(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return values, nil
}
