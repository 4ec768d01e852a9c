// Package payment talks to the hosted checkout provider.
package payment

import (
	"context"
	"errors"
)

// StatusPaid is the only payment status that finalizes an order.
const StatusPaid = "paid"

var (
	// ErrRejected marks a request the provider refused as invalid. It does not
	// count against provider health.
	ErrRejected = errors.New("payment provider rejected the request")

	// ErrUnavailable is returned while the provider is considered unhealthy.
	ErrUnavailable = errors.New("payment provider unavailable")
)

// LineItem is one priced line of a hosted checkout session.
type LineItem struct {
	Name        string
	Description string
	ImageURL    string
	UnitAmount  int64 // minor units
	Quantity    int64
}

// CreateSessionParams describes a hosted checkout session to create.
type CreateSessionParams struct {
	LineItems     []LineItem
	Currency      string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

// Session is the provider-neutral view of a checkout session.
type Session struct {
	ID              string
	URL             string
	PaymentStatus   string
	AmountTotal     int64 // minor units, 0 when unknown
	Currency        string
	CustomerEmail   string
	CustomerName    string
	PaymentIntentID string
	Metadata        map[string]string
}

// Paid reports whether the session's payment has completed.
func (s *Session) Paid() bool {
	return s.PaymentStatus == StatusPaid
}

// Provider creates and retrieves hosted checkout sessions.
type Provider interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}
