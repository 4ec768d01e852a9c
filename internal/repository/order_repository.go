package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `id, order_number, customer_email, customer_name, items, total_amount,
	currency, status, payment_session_id, payment_intent_id, shipping_address, created_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// CreateOrder inserts a new order unconditionally.
func (r *orderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	if err := r.insert(ctx, r.pool, order); err != nil {
		return err
	}

	r.logger.Debug().
		Str("order_number", order.OrderNumber).
		Str("session_id", order.PaymentSessionID).
		Msg("order created successfully")

	return nil
}

// CreateOrderOnce serialises writers for the same payment session with a
// transaction-scoped advisory lock, then inserts only if no order exists yet.
func (r *orderRepository) CreateOrderOnce(ctx context.Context, order *model.Order) (*model.Order, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, order.PaymentSessionID); err != nil {
		r.logger.Error().Err(err).Str("session_id", order.PaymentSessionID).Msg("failed to acquire session lock")
		return nil, false, fmt.Errorf("failed to acquire session lock: %w", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE payment_session_id = $1
		ORDER BY created_at, id
		LIMIT 1
	`
	existing, err := scanOrder(tx.QueryRow(ctx, query, order.PaymentSessionID))
	switch {
	case err == nil:
		r.logger.Info().
			Str("order_number", existing.OrderNumber).
			Str("session_id", order.PaymentSessionID).
			Msg("order already exists for session")
		return existing, false, nil
	case !errors.Is(err, pgx.ErrNoRows):
		r.logger.Error().Err(err).Str("session_id", order.PaymentSessionID).Msg("failed to query existing order")
		return nil, false, fmt.Errorf("failed to query existing order: %w", err)
	}

	if err := r.insert(ctx, tx, order); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("session_id", order.PaymentSessionID).Msg("failed to commit order")
		return nil, false, fmt.Errorf("failed to commit order: %w", err)
	}

	r.logger.Debug().
		Str("order_number", order.OrderNumber).
		Str("session_id", order.PaymentSessionID).
		Msg("order created successfully")

	return order, true, nil
}

// GetByOrderNumber retrieves an order by its human-readable number.
func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_number = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_number", orderNumber).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_number", orderNumber).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// ListByPaymentSessionID retrieves every order written for a payment session.
func (r *orderRepository) ListByPaymentSessionID(ctx context.Context, sessionID string) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE payment_session_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to query orders by session")
		return nil, fmt.Errorf("failed to query orders by session: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) insert(ctx context.Context, q querier, order *model.Order) error {
	items := order.Items
	if items == nil {
		items = []model.SnapshotItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = q.Exec(ctx, query,
		order.ID,
		order.OrderNumber,
		order.CustomerEmail,
		order.CustomerName,
		itemsJSON,
		order.TotalAmount,
		order.Currency,
		string(order.Status),
		order.PaymentSessionID,
		order.PaymentIntentID,
		order.ShippingAddress,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_number", order.OrderNumber).
			Str("session_id", order.PaymentSessionID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var order model.Order
	var itemsJSON []byte
	var status string
	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerEmail,
		&order.CustomerName,
		&itemsJSON,
		&order.TotalAmount,
		&order.Currency,
		&status,
		&order.PaymentSessionID,
		&order.PaymentIntentID,
		&order.ShippingAddress,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Status = model.OrderStatus(status)
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	return &order, nil
}
