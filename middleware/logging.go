package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"qwesty-backend/services"
)

// responseWriter wrapper pour capturer le code de statut
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack laisse passer l'upgrade WebSocket
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack non supporté")
	}
	return hj.Hijack()
}

// isCriticalError détermine si une erreur doit être notifiée sur Slack :
// erreurs serveur (5xx) et refus d'accès (403). Les autres 4xx sont des erreurs utilisateur.
func isCriticalError(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError || statusCode == http.StatusForbidden
}

// Logging enregistre les requêtes HTTP et envoie des notifications Slack pour les erreurs critiques
func Logging(log *zap.SugaredLogger, slackService *services.SlackService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			statusCode := rw.statusCode
			fields := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", statusCode,
				"latency", time.Since(start),
				"request_id", RequestIDFromContext(r.Context()),
			}

			if statusCode < http.StatusBadRequest {
				log.Debugw("http_request", fields...)
				return
			}
			log.Warnw("⚠️  http_request", fields...)

			if !isCriticalError(statusCode) || !slackService.Enabled() {
				return
			}

			origin := r.Header.Get("Origin")
			userAgent := r.Header.Get("User-Agent")

			// Envoi hors du chemin de la requête
			if statusCode == http.StatusForbidden && origin != "" {
				go slackService.SendCORSError(r.Method, r.RequestURI, origin, userAgent)
				return
			}
			message := http.StatusText(statusCode)
			if statusCode == http.StatusForbidden {
				message = "Accès refusé"
			}
			go slackService.SendCriticalError(r.Method, r.RequestURI, strconv.Itoa(statusCode), message, origin, userAgent)
		})
	}
}
