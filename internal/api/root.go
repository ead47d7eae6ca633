package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeanpruski/natation-tracker-api/internal/middleware"
)

// Root assembles the process-wide handler: the dual-mounted API router plus
// the Prometheus endpoint, wrapped with recovery, logging, and CORS.
func Root(h *Handler, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", h.Router())

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.Logging,
		middleware.CORS(allowedOrigins),
	)
}
