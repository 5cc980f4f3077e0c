// internal/domain/filter/category.go
package filter

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
)

// Mode is the active sort/category tab
type Mode string

const (
	ModeAll          Mode = "all"
	ModePopular      Mode = "popular"
	ModePriceLowHigh Mode = "price_low_high"
	ModePriceHighLow Mode = "price_high_low"
)

// DefaultMode is the tab selected when a page session starts
const DefaultMode = ModeAll

// ErrUnknownMode is returned by ParseMode for values outside the four tabs
var ErrUnknownMode = errors.New("unknown category mode")

// Modes lists the tabs in display order
func Modes() []Mode {
	return []Mode{ModeAll, ModePopular, ModePriceLowHigh, ModePriceHighLow}
}

// ParseMode converts a tab key into a Mode
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAll, ModePopular, ModePriceLowHigh, ModePriceHighLow:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Counts holds the per-tab badge numbers
type Counts struct {
	All          int `json:"all"`
	Popular      int `json:"popular"`
	PriceLowHigh int `json:"price_low_high"`
	PriceHighLow int `json:"price_high_low"`
}

// Compatible returns the products that fit the vehicle, in catalog order.
// Without a vehicle nothing is compatible.
func Compatible(products []catalog.Product, v *catalog.Vehicle) []catalog.Product {
	if v == nil {
		return []catalog.Product{}
	}
	out := make([]catalog.Product, 0, len(products))
	for i := range products {
		if products[i].CompatibleWith(v) {
			out = append(out, products[i])
		}
	}
	return out
}

// Sort applies the tab to an already narrowed set. The input is never modified
// and products that compare equal keep their relative order.
func Sort(products []catalog.Product, mode Mode) []catalog.Product {
	var out []catalog.Product

	switch mode {
	case ModePopular:
		out = make([]catalog.Product, 0, len(products))
		for _, p := range products {
			if p.IsPopular {
				out = append(out, p)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Reviews > out[j].Reviews })
	case ModePriceLowHigh:
		out = append([]catalog.Product(nil), products...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case ModePriceHighLow:
		out = append([]catalog.Product(nil), products...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		out = append([]catalog.Product(nil), products...)
	}

	if out == nil {
		out = []catalog.Product{}
	}
	return out
}

// CountsFor computes the badges over the attribute-narrowed compatible set
func CountsFor(narrowed []catalog.Product) Counts {
	popular := 0
	for _, p := range narrowed {
		if p.IsPopular {
			popular++
		}
	}
	return Counts{
		All:          len(narrowed),
		Popular:      popular,
		PriceLowHigh: len(narrowed),
		PriceHighLow: len(narrowed),
	}
}
