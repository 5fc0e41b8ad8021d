// Package middleware holds the chi middlewares shared by every route.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// ContextLogger stores a per-request logger, tagged with the request id set
// by chi's RequestID middleware, in the request context. Retrieve it with
// zerolog.Ctx.
func ContextLogger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With().
				Str("request_id", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Logger()
			next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
		})
	}
}

// RequestLogger logs one line per request once the response is written.
// 5xx responses log at error level, 4xx at warn.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		logger := zerolog.Ctx(r.Context())
		var e *zerolog.Event
		switch {
		case status >= 500:
			e = logger.Error()
		case status >= 400:
			e = logger.Warn()
		default:
			e = logger.Info()
		}
		e.Dur("latency", time.Since(start)).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Str("uri", r.RequestURI).
			Str("ip", r.RemoteAddr).
			Str("user_agent", r.UserAgent()).
			Msg("API")
	})
}
