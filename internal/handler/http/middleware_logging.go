package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/utils"
)

// withLogging writes one access log line per request. It runs inside
// withPrincipal, so the user ID comes from the cached principal.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		event := log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Bool("htmx", r.Header.Get("HX-Request") == "true")

		if user, ok, err := utils.CurrentUser(r.Context()); err == nil && ok {
			event = event.Int64("user_id", user.UserID)
		}

		event.Send()
	})
}
