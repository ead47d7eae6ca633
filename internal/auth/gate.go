// Package auth implements the shared-secret gate protecting mutating routes.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// APIKeyHeader is the alternate token header, checked before Authorization.
const APIKeyHeader = "X-API-Key"

const bearerPrefix = "Bearer "

// Gate permits requests only when they carry the configured shared secret.
type Gate struct {
	secret string
}

// NewGate constructs a Gate. An empty secret rejects every request.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Token extracts the candidate token from a request, preferring the API-key
// header over the bearer form of the Authorization header.
func Token(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get(APIKeyHeader)); key != "" {
		return key
	}
	header := r.Header.Get("Authorization")
	if len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	return ""
}

// Allow reports whether token matches the configured secret. The comparison
// is constant-time.
func (g *Gate) Allow(token string) bool {
	if g.secret == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(g.secret)) == 1
}

// Wrap rejects the request with 401 before it reaches next unless the gate
// allows it. The body stays generic on purpose.
func (g *Gate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Allow(Token(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("{\"error\":\"unauthorized\"}\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
