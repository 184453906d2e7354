package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/ddepe/sales-sync-api/pkg/apiErrors"
)

// publicPaths are reachable without the admin token.
var publicPaths = map[string]bool{
	"/healthcheck": true,
}

// AuthMiddleware protects the admin routes with a static bearer token. An
// empty configured token disables the check entirely, which is only meant
// for local development.
func AuthMiddleware(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminToken == "" || publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Authorization header is required", nil)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Bearer token is required", nil)
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Invalid token", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
