package middleware

import (
	"log/slog"
	"net/http"
)

// Recover converts handler panics into the generic 500 shape so a single bad
// request never takes the process down.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "error", rec, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("{\"error\":\"internal server error\"}\n"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
