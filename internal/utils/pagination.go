// Package utils provides small helpers shared across layers; currently the
// paging-parameter parsing used by the listing endpoint.
package utils

import "strconv"

// AtoiDefault parses s as an int, returning def when s is empty or not a
// number. Query values like ?page= and ?limit= come in as strings and an
// unparseable value should mean "use the default", not an error.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
