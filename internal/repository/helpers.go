package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// parseDueDate reads a stored due date. Plain dates and RFC3339 timestamps
// are accepted; anything else comes back verbatim as the second value so the
// classifier can flag it.
func parseDueDate(s sql.NullString) (*time.Time, string) {
	if !s.Valid || s.String == "" {
		return nil, ""
	}
	if t := parseNullableTime(s, domain.DateLayout); t != nil {
		return t, ""
	}
	if t := parseNullableTime(s, time.RFC3339); t != nil {
		d := domain.DateOf(*t)
		return &d, ""
	}
	return nil, s.String
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableFloatToValue converts a *float64 to a value suitable for SQLite storage.
func nullableFloatToValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
