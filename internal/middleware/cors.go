// Package middleware holds the HTTP middleware shared by the API routers.
package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-API-Key"
)

// CORS applies a whitelist origin policy. An empty allow-list permits every
// origin. Disallowed origins are denied silently: the response carries no
// access headers and preflights are answered without them, but no request is
// failed by the policy itself — the browser enforces the block.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			permit := len(allowed) == 0
			if !permit {
				_, permit = allowed[origin]
			}

			if origin != "" {
				w.Header().Add("Vary", "Origin")
			}

			if permit && origin != "" {
				headers := w.Header()
				// Echo the origin rather than "*": credentials are enabled.
				headers.Set("Access-Control-Allow-Origin", origin)
				headers.Set("Access-Control-Allow-Credentials", "true")
				headers.Set("Access-Control-Allow-Methods", corsAllowMethods)
				headers.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
