package middleware

import (
	"crypto/subtle"
	"net/http"
)

// InternalAuth guards the administrative routes with a shared secret header.
// Session or token auth is out of scope for this service, so operator tooling
// presents X-Internal-Secret instead.
func InternalAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "internal auth misconfigured", http.StatusInternalServerError)
				return
			}

			got := r.Header.Get("X-Internal-Secret")
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
