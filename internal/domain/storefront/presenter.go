// internal/domain/storefront/presenter.go
package storefront

import (
	"slices"

	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/ogtriplek/tyre-storefront/internal/domain/filter"
)

// State tells the page which of its three product-area displays to render
type State string

const (
	StateSelectVehicle State = "select_vehicle"
	StateNoMatches     State = "no_matches"
	StateResults       State = "results"
)

// Messages shown for the empty states
const (
	MessageSelectVehicle = "กรุณาเลือกรถก่อนเพื่อดูยางที่เหมาะสมกับรถของคุณ"
	MessageNoMatches     = "ไม่พบยางที่ตรงกับตัวเลือกของคุณ"
)

// View is the render-ready product area
type View struct {
	State        State                `json:"state"`
	Message      string               `json:"message,omitempty"`
	Vehicle      *catalog.Vehicle     `json:"vehicle"`
	Mode         filter.Mode          `json:"mode"`
	Selections   filter.Selections    `json:"selections"`
	Products     []catalog.Product    `json:"products"`
	Counts       filter.Counts        `json:"counts"`
	PriceBuckets []filter.BucketCount `json:"price_buckets"`
}

// Present derives the product area: compatibility, then attribute narrowing,
// then the category sort. Badge counts use the narrowed set.
func Present(products []catalog.Product, v *catalog.Vehicle, mode filter.Mode, sel filter.Selections) View {
	view := View{
		Vehicle:      v,
		Mode:         mode,
		Selections:   sel,
		Products:     []catalog.Product{},
		PriceBuckets: []filter.BucketCount{},
	}
	if v == nil {
		view.State = StateSelectVehicle
		view.Message = MessageSelectVehicle
		return view
	}

	compatible := filter.Compatible(products, v)
	narrowed := filter.Narrow(compatible, sel)

	view.Products = filter.Sort(narrowed, mode)
	view.Counts = filter.CountsFor(narrowed)
	view.PriceBuckets = filter.DisplayBuckets(compatible)

	if len(view.Products) == 0 {
		view.State = StateNoMatches
		view.Message = MessageNoMatches
	} else {
		view.State = StateResults
	}
	return view
}

// Presenter memoizes the last view. The key covers every input, so a changed
// vehicle, mode or selection always recomputes.
type Presenter struct {
	products []catalog.Product
	lastKey  string
	last     *View
}

// NewPresenter creates a presenter over the catalog products
func NewPresenter(source catalog.Source) *Presenter {
	return &Presenter{
		products: source.Products(),
	}
}

func viewKey(v *catalog.Vehicle, mode filter.Mode, sel filter.Selections) string {
	vehicle := "<none>"
	if v != nil {
		vehicle = v.ID + "@" + v.TireSize
	}
	return vehicle + "#" + string(mode) + "#" + sel.Key()
}

// Present returns the view for the given inputs
func (p *Presenter) Present(v *catalog.Vehicle, mode filter.Mode, sel filter.Selections) View {
	if p == nil {
		panic("storefront: presenter used before initialization")
	}

	key := viewKey(v, mode, sel)
	if p.last == nil || p.lastKey != key {
		view := Present(p.products, v, mode, sel)
		p.last = &view
		p.lastKey = key
	}

	out := *p.last
	out.Products = slices.Clone(p.last.Products)
	out.PriceBuckets = slices.Clone(p.last.PriceBuckets)
	if out.Vehicle != nil {
		vc := *out.Vehicle
		out.Vehicle = &vc
	}
	return out
}
