package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminTokenHeader carries the shared token for operator routes.
const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken rejects requests that do not present token, either in the
// X-Admin-Token header or as a bearer token. An empty token disables the check.
func RequireAdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if got == "" {
				got = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
