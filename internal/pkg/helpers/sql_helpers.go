package helpers

import "database/sql"

// GetContentNullString converts a string value to sql.NullString.
// If the string is empty, returns an empty NullString so optional form fields
// (referrer name, dietary restrictions, referred-by code) are stored as NULL.
func GetContentNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// StringFromNull returns the string value of a NullString, or "" when NULL.
func StringFromNull(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
