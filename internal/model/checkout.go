package model

// CartItem is one product line held in a cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity" validate:"min=1"`
}

// CustomerInfo is the optional contact and shipping data sent with a checkout.
type CustomerInfo struct {
	Name    string `json:"name" validate:"max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=450"`
}

// CheckoutRequest represents the request payload for creating a payment session.
// Items is the older wire form and is only read when Cart is empty.
type CheckoutRequest struct {
	Cart         []CartItem    `json:"cart" validate:"dive"`
	Items        []CartItem    `json:"items" validate:"dive"`
	CustomerInfo *CustomerInfo `json:"customerInfo,omitempty"`
}

// Lines returns the cart lines of the request regardless of wire form.
func (r *CheckoutRequest) Lines() []CartItem {
	if len(r.Cart) > 0 {
		return r.Cart
	}
	return r.Items
}

// CheckoutResponse represents the response payload for a created payment session.
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url,omitempty"`
}

// SnapshotItem is the order-relevant part of a cart line, serialised into the
// payment session metadata at checkout time.
type SnapshotItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// SnapshotTotal sums price * quantity over the snapshot.
func SnapshotTotal(items []SnapshotItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
