package cart

import (
	"sync"

	"github.com/linemk/coffee-shop/internal/domain/models"
)

// Cart holds the client-side shopping cart. Lines are unique per product
// id; any operation driving a quantity to zero or below removes the line
// instead. Totals are computed fresh on every read, never cached.
//
// The cart is its own single writer: callers mutate it only through the
// methods here.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
	subs  []func()
}

func New() *Cart {
	return &Cart{}
}

// Subscribe registers fn to run after every cart mutation. Subscribers
// are called outside the cart lock and may read the cart freely.
func (c *Cart) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Cart) notify() {
	c.mu.Lock()
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Add merges the product into an existing line (+1) or appends a new
// line with quantity 1.
func (c *Cart) Add(product models.Product) {
	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, models.CartItem{Product: product, Quantity: 1})
	}
	c.mu.Unlock()
	c.notify()
}

// SetQuantity replaces the quantity of the line for productID.
// q <= 0 removes the line, same as Remove.
func (c *Cart) SetQuantity(productID string, q int) {
	if q <= 0 {
		c.Remove(productID)
		return
	}
	c.mu.Lock()
	changed := false
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			changed = c.items[i].Quantity != q
			c.items[i].Quantity = q
			break
		}
	}
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

// Remove drops the line for productID. Removing an absent line is a
// no-op and does not ping subscribers.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(c.items)
	c.items = kept
	c.mu.Unlock()
	if removed {
		c.notify()
	}
}

// Clear empties the cart, e.g. after a successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	c.notify()
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// ItemCount is the total quantity across all lines, what a cart badge shows.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Subtotal is sum(basePrice * quantity) over all lines, recomputed on
// every call so it can never go stale.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, item := range c.items {
		total += item.Product.BasePrice * float64(item.Quantity)
	}
	return total
}
