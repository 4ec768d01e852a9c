package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerState reports the payment circuit breaker state.
type BreakerState interface {
	State() string
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Payment  string `json:"payment,omitempty"`
}

// HealthHandler reports service health.
type HealthHandler struct {
	db      Pinger
	breaker BreakerState
	logger  zerolog.Logger
}

// NewHealthHandler creates a new health handler. Either dependency may be nil.
func NewHealthHandler(db Pinger, breaker BreakerState, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		breaker: breaker,
		logger:  logger.With().Str("handler", "health").Logger(),
	}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy"}
	status := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp.Database = "up"
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("database ping failed")
			resp.Status = "unhealthy"
			resp.Database = "down"
			status = http.StatusServiceUnavailable
		}
	}

	// An open breaker degrades checkout but the service still answers.
	if h.breaker != nil {
		resp.Payment = h.breaker.State()
	}

	writeJSON(w, status, resp)
}
