package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/payment"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const imgixTransform = "?w=500&h=500&fit=crop&auto=format,compress"

// Metadata keys written to the payment session.
const (
	MetadataCustomerName    = "customer_name"
	MetadataShippingAddress = "shipping_address"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	provider payment.Provider
	content  ContentService
	validate *validator.Validate
	currency string
	reprice  bool
	logger   zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	provider payment.Provider,
	content ContentService,
	currency string,
	cfg config.CheckoutConfig,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		provider: provider,
		content:  content,
		validate: newValidator(),
		currency: currency,
		reprice:  cfg.RepriceFromCatalog,
		logger:   logger.With().Str("service", "checkout").Logger(),
	}
}

// CreateSession validates the cart and creates a hosted payment session.
func (s *checkoutService) CreateSession(ctx context.Context, req *model.CheckoutRequest, baseURL string) (*model.CheckoutResponse, error) {
	if req == nil || len(req.Lines()) == 0 {
		return nil, model.ErrEmptyCart
	}

	// Items is ignored when Cart is present, so only the lines in use are validated.
	checked := *req
	if len(checked.Cart) > 0 {
		checked.Items = nil
	}
	if err := s.validate.Struct(&checked); err != nil {
		s.logger.Warn().Err(err).Msg("invalid checkout request")
		return nil, validationError(err)
	}

	lines := req.Lines()
	if s.reprice {
		repriced, err := s.repriceLines(ctx, lines)
		if err != nil {
			return nil, err
		}
		lines = repriced
	}

	snapshot := make([]model.SnapshotItem, len(lines))
	lineItems := make([]payment.LineItem, len(lines))
	for i, line := range lines {
		snapshot[i] = model.SnapshotItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			Price:       line.Product.Price,
		}
		lineItems[i] = payment.LineItem{
			Name:        line.Product.Name,
			Description: line.Product.Description,
			ImageURL:    productImage(line.Product),
			UnitAmount:  toMinorUnits(line.Product.Price),
			Quantity:    int64(line.Quantity),
		}
	}

	metadata, err := model.EncodeSnapshot(snapshot)
	if err != nil {
		if errors.Is(err, model.ErrCartTooLarge) {
			s.logger.Warn().Int("lines", len(lines)).Msg("order snapshot exceeds session metadata limits")
		}
		return nil, err
	}

	params := payment.CreateSessionParams{
		LineItems:  lineItems,
		Currency:   s.currency,
		SuccessURL: baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  baseURL + "/cart",
		Metadata:   metadata,
	}
	if info := req.CustomerInfo; info != nil {
		params.CustomerEmail = info.Email
		if info.Name != "" {
			params.Metadata[MetadataCustomerName] = info.Name
		}
		if info.Address != "" {
			params.Metadata[MetadataShippingAddress] = info.Address
		}
	}

	session, err := s.provider.CreateSession(ctx, params)
	if err != nil {
		if errors.Is(err, payment.ErrUnavailable) {
			return nil, model.ErrPaymentUnavailable
		}
		s.logger.Error().Err(err).Int("lines", len(lines)).Msg("failed to create payment session")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Int("lines", len(lines)).
		Float64("total", model.SnapshotTotal(snapshot)).
		Msg("checkout session created")

	return &model.CheckoutResponse{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// repriceLines replaces every client-supplied product with the catalogue copy.
// The client's price must match the catalogue price to the cent.
func (s *checkoutService) repriceLines(ctx context.Context, lines []model.CartItem) ([]model.CartItem, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.Product.ID] {
			seen[line.Product.ID] = true
			ids = append(ids, line.Product.ID)
		}
	}

	products, err := s.content.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]model.CartItem, len(lines))
	for i, line := range lines {
		current, ok := byID[line.Product.ID]
		if !ok {
			s.logger.Warn().Str("product_id", line.Product.ID).Msg("checkout references unknown product")
			return nil, model.ErrProductNotFound
		}
		if toMinorUnits(current.Price) != toMinorUnits(line.Product.Price) {
			s.logger.Warn().
				Str("product_id", line.Product.ID).
				Float64("client_price", line.Product.Price).
				Float64("catalog_price", current.Price).
				Msg("checkout price is stale")
			return nil, model.ErrPriceChanged
		}
		out[i] = model.CartItem{Product: current, Quantity: line.Quantity}
	}
	return out, nil
}

// toMinorUnits converts a decimal amount to integer cents, rounding half away from zero.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// productImage returns the first image resized through imgix, or "" when the
// product has no imgix image.
func productImage(p model.Product) string {
	if len(p.Images) == 0 || p.Images[0].ImgixURL == "" {
		return ""
	}
	return p.Images[0].ImgixURL + imgixTransform
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts validator output into an INVALID_REQUEST domain error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.NewDomainError(model.ErrCodeInvalidRequest, err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
	}
	return model.NewDomainError(model.ErrCodeInvalidRequest, strings.Join(msgs, "; "))
}
