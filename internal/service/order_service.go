package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/notify"
	"storefront/internal/payment"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultCurrency = "usd"

// errInvalidSession is returned when the provider does not know the session.
var errInvalidSession = model.NewDomainError(model.ErrCodeInvalidRequest, "Invalid session")

// orderService implements OrderService.
type orderService struct {
	provider  payment.Provider
	orderRepo repository.OrderRepository
	publisher notify.Publisher
	cfg       config.CheckoutConfig
	now       func() time.Time
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	provider payment.Provider,
	orderRepo repository.OrderRepository,
	publisher notify.Publisher,
	cfg config.CheckoutConfig,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		provider:  provider,
		orderRepo: orderRepo,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Finalize retrieves the payment session, checks that it is paid and writes
// the order built from the session's metadata snapshot.
func (s *orderService) Finalize(ctx context.Context, sessionID string) (*model.ProcessOrderResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, model.ErrSessionIDRequired
	}

	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrUnavailable):
			return nil, model.ErrPaymentUnavailable
		case errors.Is(err, payment.ErrRejected):
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("payment session rejected")
			return nil, errInvalidSession
		}
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to retrieve payment session")
		return nil, fmt.Errorf("failed to retrieve payment session: %w", err)
	}

	if !session.Paid() {
		s.logger.Info().
			Str("session_id", sessionID).
			Str("payment_status", session.PaymentStatus).
			Msg("payment not completed")
		return nil, model.ErrPaymentNotCompleted
	}

	items, err := s.snapshotItems(session)
	if err != nil {
		return nil, err
	}

	order := s.buildOrder(session, items)

	created := true
	if s.cfg.IdempotentOrders {
		order, created, err = s.orderRepo.CreateOrderOnce(ctx, order)
	} else {
		err = s.orderRepo.CreateOrder(ctx, order)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to store order")
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	if created {
		s.logger.Info().
			Str("order_number", order.OrderNumber).
			Str("session_id", sessionID).
			Float64("total", order.TotalAmount).
			Int("items", len(order.Items)).
			Msg("order created")

		if err := s.publisher.PublishOrderPaid(ctx, order); err != nil {
			s.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to publish order notification")
		}
	}

	return &model.ProcessOrderResponse{
		Success:     true,
		OrderNumber: order.OrderNumber,
		Order:       order,
	}, nil
}

// GetByOrderNumber retrieves an order by its number.
func (s *orderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	if orderNumber == "" {
		return nil, model.ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		s.logger.Error().Err(err).Str("order_number", orderNumber).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// snapshotItems decodes the items metadata, reassembled from its numbered keys. In strict mode a missing, malformed
// or empty snapshot fails; otherwise it degrades to an empty list.
func (s *orderService) snapshotItems(session *payment.Session) ([]model.SnapshotItem, error) {
	raw, ok := model.SnapshotMetadata(session.Metadata)

	var items []model.SnapshotItem
	var err error
	switch {
	case !ok || raw == "":
		err = errors.New("items metadata is missing")
	default:
		if jsonErr := json.Unmarshal([]byte(raw), &items); jsonErr != nil {
			err = fmt.Errorf("items metadata is malformed: %w", jsonErr)
		} else if len(items) == 0 {
			err = errors.New("items metadata is empty")
		} else {
			for i, item := range items {
				if item.ProductID == "" || item.Quantity < 1 {
					err = fmt.Errorf("items metadata entry %d is incomplete", i)
					break
				}
			}
		}
	}

	if err == nil {
		return items, nil
	}

	if s.cfg.StrictMetadata {
		s.logger.Error().Err(err).Str("session_id", session.ID).Msg("payment session carries no valid order snapshot")
		return nil, model.ErrInvalidOrderMetadata
	}

	s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("order snapshot unreadable, recording order without items")
	return []model.SnapshotItem{}, nil
}

func (s *orderService) buildOrder(session *payment.Session, items []model.SnapshotItem) *model.Order {
	id := uuid.New()
	now := s.now().UTC()

	name := session.Metadata[MetadataCustomerName]
	if name == "" {
		name = session.CustomerName
	}
	if name == "" {
		name = model.UnknownCustomer
	}

	total := float64(session.AmountTotal) / 100
	if session.AmountTotal <= 0 {
		total = model.SnapshotTotal(items)
	}

	currency := strings.ToLower(session.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	return &model.Order{
		ID:               id,
		OrderNumber:      orderNumber(now, id),
		CustomerEmail:    session.CustomerEmail,
		CustomerName:     name,
		Items:            items,
		TotalAmount:      total,
		Currency:         currency,
		Status:           model.OrderStatusPaid,
		PaymentSessionID: session.ID,
		PaymentIntentID:  session.PaymentIntentID,
		ShippingAddress:  session.Metadata[MetadataShippingAddress],
		CreatedAt:        now,
	}
}

// orderNumber formats ORD-<unix ms>-<6 hex>, taking the suffix from the order ID.
func orderNumber(t time.Time, id uuid.UUID) string {
	return fmt.Sprintf("ORD-%d-%s", t.UnixMilli(), hex.EncodeToString(id[:3]))
}
