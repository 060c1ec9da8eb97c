package services

import "strings"

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}

// duplicateField picks which of the candidate fields a unique violation
// refers to. Both SQLite and PostgreSQL name the column or index in the
// error message; the first candidate is the fallback.
func duplicateField(err error, fields ...string) string {
	msg := err.Error()
	for _, f := range fields {
		if strings.Contains(msg, f) {
			return f
		}
	}
	return fields[0]
}
