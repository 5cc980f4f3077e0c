// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
)

// Entry is a snapshot of a product taken when it was first added, plus its quantity
type Entry struct {
	ProductID string    `json:"product_id"`
	Brand     string    `json:"brand"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"` // Price at time of adding
	Currency  string    `json:"currency,omitempty"`
	TireSize  string    `json:"tire_size"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Subtotal returns price times quantity
func (e Entry) Subtotal() int64 {
	return e.Price * int64(e.Quantity)
}

func entryFor(p catalog.Product, now time.Time) Entry {
	return Entry{
		ProductID: p.ID,
		Brand:     p.Brand,
		Name:      p.Name,
		Price:     p.Price,
		Currency:  p.Currency,
		TireSize:  p.CompatibleTireSize,
		Quantity:  1,
		AddedAt:   now,
	}
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of unique items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	SubTotal      int64 `json:"sub_total"`
	TotalAmount   int64 `json:"total_amount"`
}
