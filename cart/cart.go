package cart

import (
	"sync"

	"braseiro/models"
)

// Cart accumulates pending selections before checkout. It is ephemeral,
// per browsing session, and never written to the record store. Multiple
// requests on one session token reach the same cart concurrently, so every
// method holds the cart mutex.
type Cart struct {
	mu    sync.Mutex
	items []models.OrderItem
}

// AddItem merges the product into the cart, snapshotting name, price and the
// by-weight flag at this instant. Inactive products are a no-op. For unit
// products a non-positive quantity defaults to one; by-weight products need
// an explicit fractional kilogram amount, so a missing weight is a no-op.
func (c *Cart) AddItem(p models.Product, quantity float64) {
	if !p.IsActive {
		return
	}
	if quantity <= 0 {
		if p.IsByWeight {
			return
		}
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == p.ProductID {
			c.items[i].Quantity += quantity
			return
		}
	}

	c.items = append(c.items, models.OrderItem{
		ProductID:  p.ProductID,
		Name:       p.Name,
		Price:      p.Price,
		Quantity:   quantity,
		IsByWeight: p.IsByWeight,
	})
}

// RemoveItem drops the whole line for a product, not a decrement.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Total sums price*quantity across all lines. Currency rounding happens at
// display time only, so fractional weight quantities accumulate exactly.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.LineTotal()
	}
	return total
}

// Clear empties the cart; called after a successful submission.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []models.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}
