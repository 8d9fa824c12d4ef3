package models

import "regexp"

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsID reports whether s has the shape of a record id (24 hex characters).
// Lookups that accept either an id or a human-readable key use it to decide
// which one they got.
func IsID(s string) bool {
	return idPattern.MatchString(s)
}
