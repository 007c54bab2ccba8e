// Package repository contains the data access layer. Each entity gets its
// own repository with typed operations and sentinel errors so handlers can
// map failures to HTTP statuses without inspecting SQL details.
package repository

import "strings"

// isDuplicateKey reports whether err is a unique/primary key violation.
// MySQL surfaces these as error 1062; sqlite (used by the test fixtures)
// phrases them as "UNIQUE constraint failed".
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "unique")
}
