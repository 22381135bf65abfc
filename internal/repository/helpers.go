package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// parseTime parses a stored RFC3339 timestamp, yielding the zero time when
// the value is empty or malformed.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// nowUTC returns the current UTC time.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// encodeJSON serializes a column value stored as JSON text.
func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding column: %w", err)
	}
	return string(data), nil
}

// decodeNullableJSON decodes a JSON column that may be NULL. ok is false for
// NULL or empty values.
func decodeNullableJSON(s sql.NullString, v any) (ok bool, err error) {
	if !s.Valid || s.String == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(s.String), v); err != nil {
		return false, fmt.Errorf("decoding column: %w", err)
	}
	return true, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
