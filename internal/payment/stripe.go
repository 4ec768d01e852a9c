package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
)

// StripeProvider implements Provider with Stripe Checkout.
type StripeProvider struct {
	client session.Client
	logger zerolog.Logger
}

// NewStripeProvider creates a provider using the default Stripe API backend.
func NewStripeProvider(secretKey string, logger zerolog.Logger) *StripeProvider {
	return NewStripeProviderWithBackend(stripe.GetBackend(stripe.APIBackend), secretKey, logger)
}

// NewStripeProviderWithBackend creates a provider around an explicit backend.
func NewStripeProviderWithBackend(backend stripe.Backend, secretKey string, logger zerolog.Logger) *StripeProvider {
	return &StripeProvider{
		client: session.Client{B: backend, Key: secretKey},
		logger: logger.With().Str("component", "stripe").Logger(),
	}
}

// CreateSession creates a card-only checkout session in payment mode.
func (p *StripeProvider) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	sp := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(params.SuccessURL),
		CancelURL:          stripe.String(params.CancelURL),
	}
	sp.Context = ctx

	if params.CustomerEmail != "" {
		sp.CustomerEmail = stripe.String(params.CustomerEmail)
	}
	for k, v := range params.Metadata {
		sp.AddMetadata(k, v)
	}

	for _, li := range params.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(li.Name),
		}
		if li.Description != "" {
			productData.Description = stripe.String(li.Description)
		}
		if li.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{li.ImageURL})
		}

		sp.LineItems = append(sp.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(params.Currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(li.UnitAmount),
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}

	cs, err := p.client.New(sp)
	if err != nil {
		p.logger.Error().Err(err).Int("line_items", len(params.LineItems)).Msg("failed to create checkout session")
		return nil, classify("create checkout session", err)
	}

	p.logger.Info().Str("session_id", cs.ID).Int64("amount_total", cs.AmountTotal).Msg("checkout session created")
	return toSession(cs), nil
}

// RetrieveSession fetches a checkout session by ID.
func (p *StripeProvider) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := p.client.Get(sessionID, params)
	if err != nil {
		p.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to retrieve checkout session")
		return nil, classify("retrieve checkout session", err)
	}

	return toSession(cs), nil
}

// classify wraps 4xx API errors with ErrRejected.
func classify(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 {
		return fmt.Errorf("%s: %w: %s", op, ErrRejected, stripeErr.Msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toSession(cs *stripe.CheckoutSession) *Session {
	s := &Session{
		ID:            cs.ID,
		URL:           cs.URL,
		PaymentStatus: string(cs.PaymentStatus),
		AmountTotal:   cs.AmountTotal,
		Currency:      string(cs.Currency),
		CustomerEmail: cs.CustomerEmail,
		Metadata:      cs.Metadata,
	}
	if cs.CustomerDetails != nil {
		if s.CustomerEmail == "" {
			s.CustomerEmail = cs.CustomerDetails.Email
		}
		s.CustomerName = cs.CustomerDetails.Name
	}
	if cs.PaymentIntent != nil {
		s.PaymentIntentID = cs.PaymentIntent.ID
	}
	if s.Metadata == nil {
		s.Metadata = map[string]string{}
	}
	return s
}
