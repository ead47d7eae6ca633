package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "natation",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed, labelled by method, route and status.",
	}, []string{"method", "route", "status"})

	sessionMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "natation",
		Subsystem: "sessions",
		Name:      "mutations_total",
		Help:      "Session rows created, updated, or deleted.",
	}, []string{"operation"})
)

func init() {
	prometheus.MustRegister(requestsTotal, sessionMutations)
}

// RecordRequest counts one completed HTTP request.
func RecordRequest(method, route string, status int) {
	requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RecordMutation counts one successful session write.
func RecordMutation(operation string) {
	sessionMutations.WithLabelValues(operation).Inc()
}
