package handler

import (
	"net/http"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles payment session creation.
type CheckoutHandler struct {
	service   service.CheckoutService
	publicURL string
	logger    zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler. publicURL roots the
// redirect URLs when a request carries no Origin header.
func NewCheckoutHandler(service service.CheckoutService, publicURL string, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service:   service,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger.With().Str("handler", "checkout").Logger(),
	}
}

// CreateSession handles POST /api/create-checkout-session.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.CreateSession(r.Context(), &req, h.baseURL(r))
	if err != nil {
		writeServiceError(w, err, "failed to create checkout session", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *CheckoutHandler) baseURL(r *http.Request) string {
	origin := r.Header.Get("Origin")
	if strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://") {
		return strings.TrimRight(origin, "/")
	}
	return h.publicURL
}
