package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Process handles POST /api/process-order.
func (h *OrderHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req model.ProcessOrderRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.Finalize(r.Context(), req.SessionID)
	if err != nil {
		writeServiceError(w, err, "failed to process order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetByOrderNumber handles GET /api/admin/orders/{orderNumber}.
func (h *OrderHandler) GetByOrderNumber(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetByOrderNumber(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
