package service

import (
	"context"

	"storefront/internal/model"
)

// ContentService exposes typed, read-only access to CMS content.
type ContentService interface {
	ListServices(ctx context.Context, limit, offset int) ([]model.Service, error)
	GetService(ctx context.Context, slug string) (*model.Service, error)

	ListProducts(ctx context.Context, limit, offset int) ([]model.Product, error)
	GetProduct(ctx context.Context, slug string) (*model.Product, error)

	// GetProductsByIDs returns the products found; unknown IDs are skipped.
	GetProductsByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	ListCaseStudies(ctx context.Context, limit, offset int) ([]model.CaseStudy, error)
	GetCaseStudy(ctx context.Context, slug string) (*model.CaseStudy, error)

	ListTeamMembers(ctx context.Context, limit, offset int) ([]model.TeamMember, error)
	ListTestimonials(ctx context.Context, limit, offset int) ([]model.Testimonial, error)
}

// CartService manages server-held carts.
type CartService interface {
	Create(ctx context.Context) (*model.CartView, error)
	Get(ctx context.Context, cartID string) (*model.CartView, error)

	// AddItem resolves productID through the catalogue and adds quantity units.
	AddItem(ctx context.Context, cartID, productID string, quantity int) (*model.CartView, error)

	// UpdateItem sets a line's quantity; zero or less removes the line.
	UpdateItem(ctx context.Context, cartID, productID string, quantity int) (*model.CartView, error)

	RemoveItem(ctx context.Context, cartID, productID string) (*model.CartView, error)
	Clear(ctx context.Context, cartID string) (*model.CartView, error)
}

// CheckoutService creates hosted payment sessions from carts.
type CheckoutService interface {
	// CreateSession validates the cart and creates a payment session whose
	// redirect URLs are rooted at baseURL.
	CreateSession(ctx context.Context, req *model.CheckoutRequest, baseURL string) (*model.CheckoutResponse, error)
}

// OrderService turns paid payment sessions into orders.
type OrderService interface {
	// Finalize verifies the session is paid and records its order.
	Finalize(ctx context.Context, sessionID string) (*model.ProcessOrderResponse, error)

	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error)
}
