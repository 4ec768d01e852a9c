package model

// CartView is the representation of a cart returned by the cart API.
type CartView struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// AddCartItemRequest represents the request payload for adding a product to a cart.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents the request payload for changing a line quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
