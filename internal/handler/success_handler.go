package handler

import (
	"errors"
	"html/template"
	"net/http"

	"storefront/internal/confirmation"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

var successPage = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Confirmed}}Order Confirmed{{else}}Order Not Confirmed{{end}}</title>
</head>
<body>
<main>
{{- if .Confirmed}}
<h1>Order Confirmed!</h1>
<p>Thank you for your purchase. Your order has been successfully placed.</p>
{{- if .OrderNumber}}
<p>Order Number: <strong>{{.OrderNumber}}</strong></p>
{{- end}}
<a href="/shop">Continue Shopping</a>
{{- else}}
<h1>We could not confirm your order</h1>
<p>{{.Message}}</p>
<a href="/cart">Return to Cart</a>
{{- end}}
</main>
</body>
</html>
`))

type successView struct {
	Confirmed   bool
	OrderNumber string
	Message     string
}

// SuccessPageHandler renders the page the payment provider redirects to.
type SuccessPageHandler struct {
	finalizer confirmation.Finalizer
	carts     service.CartService
	logger    zerolog.Logger
}

// NewSuccessPageHandler creates a new success page handler.
func NewSuccessPageHandler(finalizer confirmation.Finalizer, carts service.CartService, logger zerolog.Logger) *SuccessPageHandler {
	return &SuccessPageHandler{
		finalizer: finalizer,
		carts:     carts,
		logger:    logger.With().Str("handler", "success_page").Logger(),
	}
}

// Show handles GET /checkout/success?session_id=...
func (h *SuccessPageHandler) Show(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}

	flow := confirmation.NewFlow()
	state := flow.Run(r.Context(), h.finalizer, sessionID)

	view := successView{
		Confirmed:   state == confirmation.StateConfirmed,
		OrderNumber: flow.OrderNumber(),
		Message:     flow.Message(),
	}

	if view.Confirmed {
		h.clearCart(w, r)
	} else {
		h.logger.Warn().Str("session_id", sessionID).Str("message", view.Message).Msg("order confirmation failed")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := successPage.Execute(w, view); err != nil {
		h.logger.Error().Err(err).Msg("failed to render success page")
	}
}

// clearCart empties the cart named by the cart cookie and expires the cookie.
func (h *SuccessPageHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(CartCookie)
	if err != nil || cookie.Value == "" {
		return
	}

	if _, err := h.carts.Clear(r.Context(), cookie.Value); err != nil && !errors.Is(err, model.ErrCartNotFound) {
		h.logger.Error().Err(err).Str("cart_id", cookie.Value).Msg("failed to clear cart after order")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CartCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
