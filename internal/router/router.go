package router

import (
	"net/http"
	"time"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Health      *handler.HealthHandler
	Content     *handler.ContentHandler
	Cart        *handler.CartHandler
	Checkout    *handler.CheckoutHandler
	Order       *handler.OrderHandler
	Catalog     *handler.CatalogHandler
	SuccessPage *handler.SuccessPageHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, requestTimeout time.Duration, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> CORS -> Timeout
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/health", h.Health.Check)
	r.Get("/checkout/success", h.SuccessPage.Show)

	r.Route("/api", func(r chi.Router) {
		r.Get("/content/{type}", h.Content.List)
		r.Get("/content/{type}/{slug}", h.Content.Get)

		r.Post("/create-checkout-session", h.Checkout.CreateSession)
		r.Post("/process-order", h.Order.Process)

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", h.Cart.Create)
			r.Route("/{cartID}", func(r chi.Router) {
				r.Get("/", h.Cart.Get)
				r.Delete("/", h.Cart.Clear)
				r.Post("/items", h.Cart.AddItem)
				r.Patch("/items/{productID}", h.Cart.UpdateItem)
				r.Delete("/items/{productID}", h.Cart.RemoveItem)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(apiKey, logger))
			r.Get("/orders/{orderNumber}", h.Order.GetByOrderNumber)
			r.Post("/catalog/import", h.Catalog.Import)
		})
	})

	return r
}
