// internal/domain/cart/cart.go
package cart

import (
	"slices"
	"time"

	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
)

// MaxQuantity caps a single entry so totals stay well inside int64
const MaxQuantity = 999

// Cart maps product ids to entries. Every stored entry has quantity >= 1.
type Cart struct {
	entries map[string]*Entry
	order   []string
	now     func() time.Time
}

// New creates an empty cart
func New() *Cart {
	return &Cart{
		entries: make(map[string]*Entry),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// FromEntries rebuilds a cart from stored entries, skipping any with quantity < 1
// and capping the rest at MaxQuantity. A repeated product id keeps the first entry.
func FromEntries(entries []Entry) *Cart {
	c := New()
	for _, e := range entries {
		if e.Quantity < 1 || e.ProductID == "" {
			continue
		}
		if _, dup := c.entries[e.ProductID]; dup {
			continue
		}
		e := e
		e.Quantity = min(e.Quantity, MaxQuantity)
		c.entries[e.ProductID] = &e
		c.order = append(c.order, e.ProductID)
	}
	return c
}

func (c *Cart) mustInit() {
	if c == nil || c.entries == nil {
		panic("cart: cart used before initialization")
	}
}

// Add increments the quantity of an existing entry or inserts one with quantity 1.
// The stored price stays the one captured on first add. An entry already at
// MaxQuantity is left as is.
func (c *Cart) Add(p catalog.Product) {
	c.mustInit()
	if e, ok := c.entries[p.ID]; ok {
		if e.Quantity < MaxQuantity {
			e.Quantity++
		}
		return
	}
	e := entryFor(p, c.now())
	c.entries[p.ID] = &e
	c.order = append(c.order, p.ID)
}

// Remove deletes the entry; unknown ids are ignored
func (c *Cart) Remove(productID string) {
	c.mustInit()
	if _, ok := c.entries[productID]; !ok {
		return
	}
	delete(c.entries, productID)
	c.order = slices.DeleteFunc(c.order, func(id string) bool { return id == productID })
}

// SetQuantity overwrites the quantity. Zero or less removes the entry and
// anything above MaxQuantity is capped. Unknown ids are ignored.
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.mustInit()
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	if e, ok := c.entries[productID]; ok {
		e.Quantity = min(quantity, MaxQuantity)
	}
}

// Quantity returns the stored quantity, 0 when absent
func (c *Cart) Quantity(productID string) int {
	c.mustInit()
	if e, ok := c.entries[productID]; ok {
		return e.Quantity
	}
	return 0
}

// Len returns the number of distinct products
func (c *Cart) Len() int {
	c.mustInit()
	return len(c.entries)
}

// TotalItems returns the sum of quantities
func (c *Cart) TotalItems() int {
	c.mustInit()
	total := 0
	for _, e := range c.entries {
		total += e.Quantity
	}
	return total
}

// TotalPrice returns the sum of captured price times quantity
func (c *Cart) TotalPrice() int64 {
	c.mustInit()
	var total int64
	for _, e := range c.entries {
		total += e.Subtotal()
	}
	return total
}

// Totals returns the summary shown next to the cart icon
func (c *Cart) Totals() Totals {
	c.mustInit()
	sub := c.TotalPrice()
	return Totals{
		ItemCount:     len(c.entries),
		TotalQuantity: c.TotalItems(),
		SubTotal:      sub,
		TotalAmount:   sub,
	}
}

// Items returns copies of the entries in the order they were first added
func (c *Cart) Items() []Entry {
	c.mustInit()
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.entries[id])
	}
	return out
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.mustInit()
	clear(c.entries)
	c.order = c.order[:0]
}
