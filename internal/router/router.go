// Package router mounts the handlers on a chi router.
package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"sdrdemo/internal/errs"
	"sdrdemo/internal/handler"
	"sdrdemo/internal/middleware"
)

type Options struct {
	BasePath       string
	RequestTimeout time.Duration
}

func New(h *handler.Handlers, logger zerolog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.ContextLogger(logger))
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errs.NewNotFoundError("Route not found", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusMethodNotAllowed)),
			Message: http.StatusText(http.StatusMethodNotAllowed),
			Status:  http.StatusMethodNotAllowed,
		})
	})

	registerSystemRoutes(r, h)

	r.Route(opts.BasePath+"/customer", func(r chi.Router) {
		r.Get("/", h.Customer.List)
		r.Get("/search", h.Customer.SearchIndex)
		r.Get("/search/findByNameLike", h.Customer.FindByNameLike)
		r.Get("/{id}", h.Customer.Get)
		r.Delete("/{id}", h.Customer.Delete)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json", "application/hal+json"))
			r.Post("/", h.Customer.Create)
			r.Put("/{id}", h.Customer.Replace)
			r.Patch("/{id}", h.Customer.Patch)
		})
	})

	return r
}

func registerSystemRoutes(r chi.Router, h *handler.Handlers) {
	r.Get("/status", h.Health.CheckHealth)
}

func writeError(w http.ResponseWriter, e *errs.HTTPError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}
