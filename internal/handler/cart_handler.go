package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartCookie names the cookie carrying the shopper's cart ID.
const CartCookie = "cart_id"

// CartHandler handles server-held cart requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Create handles POST /api/cart. The new cart ID is also set as a cookie so
// the success page can clear it.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Create(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to create cart", h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CartCookie,
		Value:    view.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusCreated, view)
}

// Get handles GET /api/cart/{cartID}.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), chi.URLParam(r, "cartID"))
	h.respond(w, view, err)
}

// AddItem handles POST /api/cart/{cartID}/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddCartItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "productId is required", h.logger)
		return
	}

	view, err := h.service.AddItem(r.Context(), chi.URLParam(r, "cartID"), req.ProductID, req.Quantity)
	h.respond(w, view, err)
}

// UpdateItem handles PATCH /api/cart/{cartID}/items/{productID}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCartItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	view, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "cartID"), chi.URLParam(r, "productID"), req.Quantity)
	h.respond(w, view, err)
}

// RemoveItem handles DELETE /api/cart/{cartID}/items/{productID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveItem(r.Context(), chi.URLParam(r, "cartID"), chi.URLParam(r, "productID"))
	h.respond(w, view, err)
}

// Clear handles DELETE /api/cart/{cartID}.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Clear(r.Context(), chi.URLParam(r, "cartID"))
	h.respond(w, view, err)
}

func (h *CartHandler) respond(w http.ResponseWriter, view *model.CartView, err error) {
	if err != nil {
		writeServiceError(w, err, "failed to update cart", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
