package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"qwesty-backend/services"
)

// Metrics mesure chaque requête, étiquetée par le gabarit de route
func Metrics(metricsSvc *services.MetricsService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if metricsSvc == nil {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			// Étiquette : gabarit de route, jamais le chemin brut
			path := "unmatched"
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}
			metricsSvc.ObserveHTTPRequest(r.Method, path, rw.statusCode, time.Since(start))
		})
	}
}
