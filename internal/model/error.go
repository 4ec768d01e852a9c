package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeInvalidRequest       = "INVALID_REQUEST"
	ErrCodeEmptyCart            = "EMPTY_CART"
	ErrCodeSessionIDRequired    = "SESSION_ID_REQUIRED"
	ErrCodePaymentNotCompleted  = "PAYMENT_NOT_COMPLETED"
	ErrCodeInvalidOrderMetadata = "INVALID_ORDER_METADATA"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodePriceChanged         = "PRICE_CHANGED"
	ErrCodeContentNotFound      = "CONTENT_NOT_FOUND"
	ErrCodeCartNotFound         = "CART_NOT_FOUND"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeCartTooLarge         = "CART_TOO_LARGE"
	ErrCodePaymentUnavailable   = "PAYMENT_UNAVAILABLE"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure that is safe to show to the caller.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// AsDomainError unwraps err to a *DomainError if it carries one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrEmptyCart            = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrSessionIDRequired    = NewDomainError(ErrCodeSessionIDRequired, "Session ID is required")
	ErrPaymentNotCompleted  = NewDomainError(ErrCodePaymentNotCompleted, "Payment has not been completed")
	ErrInvalidOrderMetadata = NewDomainError(ErrCodeInvalidOrderMetadata, "Checkout session carries no valid order snapshot")
	ErrProductNotFound      = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrPriceChanged         = NewDomainError(ErrCodePriceChanged, "One or more prices have changed, please review your cart")
	ErrContentNotFound      = NewDomainError(ErrCodeContentNotFound, "Content not found")
	ErrCartNotFound         = NewDomainError(ErrCodeCartNotFound, "Cart not found")
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidQuantity      = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrPaymentUnavailable   = NewDomainError(ErrCodePaymentUnavailable, "Payment provider is temporarily unavailable")
	ErrCartTooLarge         = NewDomainError(ErrCodeCartTooLarge, "Cart has too many items to check out at once")
)
