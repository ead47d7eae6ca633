package middleware

import (
	"net/http"
	"strings"
)

// BlockNavigation short-circuits full-page browser navigations to API GET
// endpoints with an empty 204, so an authenticated URL pasted into an address
// bar never reaches a real handler. This is a heuristic, not a security
// boundary; anything ambiguous is treated as a programmatic call and let
// through.
func BlockNavigation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && isNavigation(r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isNavigation(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	if r.Header.Get("Sec-Fetch-Dest") == "document" {
		return true
	}
	return prefersHTML(r.Header.Get("Accept"))
}

// prefersHTML reports whether the Accept header ranks text/html ahead of
// application/json.
func prefersHTML(accept string) bool {
	html := strings.Index(accept, "text/html")
	if html < 0 {
		return false
	}
	json := strings.Index(accept, "application/json")
	return json < 0 || html < json
}
