package repository

import (
	"context"

	"storefront/internal/model"
)

// ContentRepository defines data access for CMS content objects.
type ContentRepository interface {
	// List retrieves objects of one type ordered by title, with pagination.
	List(ctx context.Context, objType string, limit, offset int) ([]model.ContentObject, error)

	// GetBySlug retrieves a single object. Returns nil, nil when absent.
	GetBySlug(ctx context.Context, objType, slug string) (*model.ContentObject, error)

	// GetByIDs retrieves the objects of one type whose IDs are listed.
	GetByIDs(ctx context.Context, objType string, ids []string) ([]model.ContentObject, error)

	// Upsert inserts or replaces objects by ID and returns how many were written.
	Upsert(ctx context.Context, objects []model.ContentObject) (int, error)
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	// CreateOrder inserts a new order unconditionally.
	CreateOrder(ctx context.Context, order *model.Order) error

	// CreateOrderOnce inserts order unless one already exists for its payment
	// session. It returns the stored order and whether it was created by this call.
	CreateOrderOnce(ctx context.Context, order *model.Order) (*model.Order, bool, error)

	// GetByOrderNumber retrieves an order. Returns nil, nil when absent.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error)

	// ListByPaymentSessionID retrieves every order written for a payment session, oldest first.
	ListByPaymentSessionID(ctx context.Context, sessionID string) ([]model.Order, error)
}
