package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when no cart is stored under an ID.
var ErrNotFound = errors.New("cart not found")

// Persister stores cart lines by cart ID. Writes replace the whole list; the
// last writer wins.
type Persister interface {
	Load(ctx context.Context, cartID string) ([]model.CartItem, error)
	Save(ctx context.Context, cartID string, items []model.CartItem) error
	Delete(ctx context.Context, cartID string) error
}

type storedCart struct {
	Items     []model.CartItem `json:"items"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// RedisPersister keeps each cart as a JSON blob under cart:<id>. Every save
// refreshes the key's TTL.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisPersister creates a Redis-backed cart persister.
func NewRedisPersister(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisPersister {
	return &RedisPersister{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "cart-persister").Logger(),
	}
}

// Load returns the stored lines or ErrNotFound.
func (p *RedisPersister) Load(ctx context.Context, cartID string) ([]model.CartItem, error) {
	data, err := p.client.Get(ctx, cartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		p.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to load cart")
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var stored storedCart
	if err := json.Unmarshal(data, &stored); err != nil {
		p.logger.Error().Err(err).Str("cart_id", cartID).Msg("stored cart is not valid JSON")
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	if stored.Items == nil {
		stored.Items = []model.CartItem{}
	}
	return stored.Items, nil
}

// Save replaces the stored lines and resets the TTL.
func (p *RedisPersister) Save(ctx context.Context, cartID string, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	data, err := json.Marshal(storedCart{Items: items, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := p.client.Set(ctx, cartKey(cartID), data, p.ttl).Err(); err != nil {
		p.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to save cart")
		return fmt.Errorf("redis set failed: %w", err)
	}

	p.logger.Debug().Str("cart_id", cartID).Int("lines", len(items)).Msg("cart saved")
	return nil
}

// Delete removes the cart. Deleting an absent cart is not an error.
func (p *RedisPersister) Delete(ctx context.Context, cartID string) error {
	if err := p.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		p.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to delete cart")
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cartKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}

// MemoryPersister keeps carts in process memory. Used in development and tests.
type MemoryPersister struct {
	mu    sync.RWMutex
	carts map[string][]model.CartItem
}

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{carts: make(map[string][]model.CartItem)}
}

func (p *MemoryPersister) Load(_ context.Context, cartID string) ([]model.CartItem, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	items, ok := p.carts[cartID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (p *MemoryPersister) Save(_ context.Context, cartID string, items []model.CartItem) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	stored := make([]model.CartItem, len(items))
	copy(stored, items)
	p.carts[cartID] = stored
	return nil
}

func (p *MemoryPersister) Delete(_ context.Context, cartID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.carts, cartID)
	return nil
}
