// Package cart holds the shopping cart state object and its persistence.
package cart

import (
	"sync"

	"storefront/internal/model"
)

// Listener is notified with a copy of the lines after every mutation that
// changed the cart.
type Listener func(items []model.CartItem)

// Cart is a list of product lines keyed by product ID. It is safe for
// concurrent use; listeners run after the lock is released.
type Cart struct {
	mu        sync.Mutex
	items     []model.CartItem
	listeners []Listener
}

// New builds a cart from previously stored lines. Lines for the same product
// are merged and lines with a non-positive quantity are dropped.
func New(items []model.CartItem) *Cart {
	c := &Cart{}
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if i := c.indexOf(item.Product.ID); i >= 0 {
			c.items[i].Quantity += item.Quantity
			continue
		}
		c.items = append(c.items, item)
	}
	return c
}

// OnChange registers a listener.
func (c *Cart) OnChange(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Add increments the quantity of an existing line or appends a new one.
// A quantity below 1 adds a single unit.
func (c *Cart) Add(product model.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	if i := c.indexOf(product.ID); i >= 0 {
		c.items[i].Quantity += quantity
	} else {
		c.items = append(c.items, model.CartItem{Product: product, Quantity: quantity})
	}
	c.mu.Unlock()

	c.notify()
}

// Remove deletes the line for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	changed := c.removeLocked(productID)
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line. Absent products are ignored.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	var changed bool
	if quantity <= 0 {
		changed = c.removeLocked(productID)
	} else if i := c.indexOf(productID); i >= 0 && c.items[i].Quantity != quantity {
		c.items[i].Quantity = quantity
		changed = true
	}
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()

	c.notify()
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Total returns the sum of price * quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount returns the number of units across all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// View returns the API representation of the cart.
func (c *Cart) View(id string) *model.CartView {
	return &model.CartView{
		ID:        id,
		Items:     c.Items(),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeLocked(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

func (c *Cart) snapshotLocked() []model.CartItem {
	out := make([]model.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) notify() {
	c.mu.Lock()
	items := c.snapshotLocked()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l(items)
	}
}
