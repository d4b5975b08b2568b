package cache

import (
	"net/url"
	"strings"
)

// NormalizeKey converts a rendered request path plus query string into a cache
// key. The input is URL-decoded and spaces become underscores, so encoding
// differences of the same logical request map to one key.
func NormalizeKey(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}
	return strings.ReplaceAll(decoded, " ", "_")
}
