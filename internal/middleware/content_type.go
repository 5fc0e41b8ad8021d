package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"sdrdemo/internal/errs"
)

// AllowContentType rejects requests carrying a body whose media type is not
// one of contentTypes with a JSON 415. Bodyless requests pass through.
func AllowContentType(contentTypes ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(contentTypes))
	for _, ct := range contentTypes {
		allowed[strings.ToLower(ct)] = struct{}{}
	}
	message := "Content-Type must be one of " + strings.Join(contentTypes, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			mediaType, _, _ := strings.Cut(r.Header.Get("Content-Type"), ";")
			if _, ok := allowed[strings.ToLower(strings.TrimSpace(mediaType))]; ok {
				next.ServeHTTP(w, r)
				return
			}

			httpErr := errs.NewUnsupportedMediaTypeError(message)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(httpErr.Status)
			_ = json.NewEncoder(w).Encode(httpErr)
		})
	}
}
