package middleware

import (
	"net/http"
	"time"

	"github.com/hongminglow/financas-be/internal/metrics"
)

// Metrics observes every request under its mux pattern. It must wrap the
// ServeMux directly: the mux records the matched pattern on the request it
// is handed.
func Metrics(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := wrap(w)

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		setRoute(r.Context(), route)
		m.ObserveRequest(route, r.Method, rec.status, time.Since(start))
	})
}
