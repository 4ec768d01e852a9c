package integration

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"storefront/internal/model"
	"storefront/internal/payment"
)

// fakeProvider is an in-memory hosted checkout. Sessions start unpaid.
type fakeProvider struct {
	mu       sync.Mutex
	sessions map[string]*payment.Session
	params   map[string]payment.CreateSessionParams
	next     int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		sessions: make(map[string]*payment.Session),
		params:   make(map[string]payment.CreateSessionParams),
	}
}

func (p *fakeProvider) CreateSession(_ context.Context, params payment.CreateSessionParams) (*payment.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.next++
	id := fmt.Sprintf("cs_test_%d", p.next)

	var total int64
	for _, li := range params.LineItems {
		total += li.UnitAmount * li.Quantity
	}

	s := &payment.Session{
		ID:            id,
		URL:           "https://checkout.example.com/" + id,
		PaymentStatus: "unpaid",
		AmountTotal:   total,
		Currency:      params.Currency,
		CustomerEmail: params.CustomerEmail,
		Metadata:      maps.Clone(params.Metadata),
	}
	p.sessions[id] = s
	p.params[id] = params

	out := *s
	return &out, nil
}

func (p *fakeProvider) RetrieveSession(_ context.Context, sessionID string) (*payment.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session %s: %w", sessionID, payment.ErrRejected)
	}
	out := *s
	out.Metadata = maps.Clone(s.Metadata)
	return &out, nil
}

func (p *fakeProvider) markPaid(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[sessionID].PaymentStatus = payment.StatusPaid
	p.sessions[sessionID].PaymentIntentID = "pi_" + sessionID
}

func (p *fakeProvider) created(sessionID string) payment.CreateSessionParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params[sessionID]
}

// recordingPublisher counts order.paid notifications.
type recordingPublisher struct {
	mu     sync.Mutex
	orders []string
}

func (p *recordingPublisher) PublishOrderPaid(_ context.Context, order *model.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, order.OrderNumber)
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.orders...)
}
