package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of a persisted order.
type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusCompleted OrderStatus = "Completed"
)

// UnknownCustomer is recorded when the payment session carries no customer name.
const UnknownCustomer = "Unknown Customer"

// Order represents a paid customer order. Items is the snapshot captured when
// the payment session was created, never live product data.
type Order struct {
	ID               uuid.UUID      `json:"id" db:"id"`
	OrderNumber      string         `json:"orderNumber" db:"order_number"`
	CustomerEmail    string         `json:"customerEmail" db:"customer_email"`
	CustomerName     string         `json:"customerName" db:"customer_name"`
	Items            []SnapshotItem `json:"items" db:"items"`
	TotalAmount      float64        `json:"totalAmount" db:"total_amount"`
	Currency         string         `json:"currency" db:"currency"`
	Status           OrderStatus    `json:"status" db:"status"`
	PaymentSessionID string         `json:"paymentSessionId" db:"payment_session_id"`
	PaymentIntentID  string         `json:"paymentIntentId,omitempty" db:"payment_intent_id"`
	ShippingAddress  string         `json:"shippingAddress,omitempty" db:"shipping_address"`
	CreatedAt        time.Time      `json:"createdAt" db:"created_at"`
}

// ProcessOrderRequest represents the request payload for finalizing an order.
type ProcessOrderRequest struct {
	SessionID string `json:"sessionId"`
}

// ProcessOrderResponse represents the response payload for a finalized order.
type ProcessOrderResponse struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber"`
	Order       *Order `json:"order"`
}
