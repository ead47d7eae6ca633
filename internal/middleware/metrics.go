package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jeanpruski/natation-tracker-api/internal/observability"
)

// Metrics counts completed requests. The route label uses the chi pattern
// when one matched, so ids do not blow up the label cardinality. Mount it
// with Use on the chi router: outside of it chi's route context is not on
// the request and the label degrades to the raw path.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		observability.RecordRequest(r.Method, route, rec.status)
	})
}
