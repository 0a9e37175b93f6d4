// Package content holds the pieces shared by the four provider adapters:
// the HTTP client contract and the query matching used to filter fallback
// catalogs.
package content

import (
	"net/http"
	"strings"
)

// Doer is the minimal HTTP surface a provider needs. *http.Client satisfies
// it; tests substitute stubs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MatchesQuery reports whether any field contains the query, case
// insensitively. An empty query matches everything, so unfiltered fallback
// listings fall out of the same path.
func MatchesQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
