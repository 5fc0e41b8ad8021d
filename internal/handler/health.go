package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"sdrdemo/internal/errs"
)

const healthCheckTimeout = 5 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB Pinger
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// CheckHealth serves GET /status: 200 when the database answers a ping,
// otherwise a 503 error body.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if err := h.DB.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("database health check failed")
		httpErr := errs.NewServiceUnavailableError("Database is unavailable")
		httpErr.Errors = []errs.FieldError{{Field: "database", Error: "unhealthy"}}
		w.WriteHeader(httpErr.Status)
		_ = json.NewEncoder(w).Encode(httpErr)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Checks:    map[string]string{"database": "healthy"},
	})
}
