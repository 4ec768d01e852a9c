package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/cart"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService on top of a cart.Persister.
type cartService struct {
	persister cart.Persister
	content   ContentService
	logger    zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(persister cart.Persister, content ContentService, logger zerolog.Logger) CartService {
	return &cartService{
		persister: persister,
		content:   content,
		logger:    logger.With().Str("service", "cart").Logger(),
	}
}

// Create stores a new empty cart under a random ID.
func (s *cartService) Create(ctx context.Context) (*model.CartView, error) {
	id := uuid.NewString()
	if err := s.persister.Save(ctx, id, nil); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	s.logger.Debug().Str("cart_id", id).Msg("cart created")
	return cart.New(nil).View(id), nil
}

func (s *cartService) Get(ctx context.Context, cartID string) (*model.CartView, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return c.View(cartID), nil
}

func (s *cartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (*model.CartView, error) {
	if quantity < 0 {
		return nil, model.ErrInvalidQuantity
	}

	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	products, err := s.content.GetProductsByIDs(ctx, []string{productID})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		s.logger.Debug().Str("product_id", productID).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return s.mutate(ctx, cartID, c, func(c *cart.Cart) {
		c.Add(products[0], quantity)
	})
}

func (s *cartService) UpdateItem(ctx context.Context, cartID, productID string, quantity int) (*model.CartView, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, cartID, c, func(c *cart.Cart) {
		c.UpdateQuantity(productID, quantity)
	})
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, productID string) (*model.CartView, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, cartID, c, func(c *cart.Cart) {
		c.Remove(productID)
	})
}

func (s *cartService) Clear(ctx context.Context, cartID string) (*model.CartView, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, cartID, c, func(c *cart.Cart) {
		c.Clear()
	})
}

func (s *cartService) load(ctx context.Context, cartID string) (*cart.Cart, error) {
	if cartID == "" {
		return nil, model.ErrCartNotFound
	}

	items, err := s.persister.Load(ctx, cartID)
	if errors.Is(err, cart.ErrNotFound) {
		return nil, model.ErrCartNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart.New(items), nil
}

// mutate applies fn and persists the result through the cart's change listener.
func (s *cartService) mutate(ctx context.Context, cartID string, c *cart.Cart, fn func(*cart.Cart)) (*model.CartView, error) {
	var saveErr error
	c.OnChange(func(items []model.CartItem) {
		saveErr = s.persister.Save(ctx, cartID, items)
	})

	fn(c)

	if saveErr != nil {
		s.logger.Error().Err(saveErr).Str("cart_id", cartID).Msg("failed to save cart")
		return nil, fmt.Errorf("failed to save cart: %w", saveErr)
	}
	return c.View(cartID), nil
}
