// internal/domain/storefront/session.go
package storefront

import (
	"time"

	"github.com/ogtriplek/tyre-storefront/internal/domain/cart"
	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/ogtriplek/tyre-storefront/internal/domain/filter"
	"github.com/ogtriplek/tyre-storefront/internal/domain/vehicle"
)

// Catalog is the feed a session reads from, with id lookups
type Catalog interface {
	catalog.Source
	Vehicle(id string) (catalog.Vehicle, bool)
	Product(id string) (catalog.Product, bool)
}

// Session is one page's state tree: vehicle picker, filter state and cart.
// It is driven by a single actor and is not safe for concurrent use.
type Session struct {
	catalog    Catalog
	presenter  *Presenter
	selector   *vehicle.Selector
	mode       filter.Mode
	selections filter.Selections
	cart       *cart.Cart
	notice     *Notice
}

// Option configures a session
type Option func(*Session)

// WithNoticeDuration sets how long the added-to-cart flag lasts
func WithNoticeDuration(d time.Duration) Option {
	return func(s *Session) {
		s.notice = NewNotice(d)
	}
}

// NewSession creates a session with default filter state and an empty cart
func NewSession(c Catalog, opts ...Option) *Session {
	if c == nil {
		panic("storefront: session requires a catalog")
	}
	s := &Session{
		catalog:   c,
		presenter: NewPresenter(c),
		selector:  vehicle.NewSelector(c.Vehicles()),
		mode:      filter.DefaultMode,
		cart:      cart.New(),
		notice:    NewNotice(DefaultNoticeDuration),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) mustInit() {
	if s == nil || s.catalog == nil {
		panic("storefront: session used before initialization")
	}
}

// Selector exposes the vehicle picker
func (s *Session) Selector() *vehicle.Selector {
	s.mustInit()
	return s.selector
}

// Cart exposes the cart
func (s *Session) Cart() *cart.Cart {
	s.mustInit()
	return s.cart
}

// Notice exposes the added-to-cart flag
func (s *Session) Notice() *Notice {
	s.mustInit()
	return s.notice
}

// SetQuery records the vehicle search text
func (s *Session) SetQuery(text string) {
	s.mustInit()
	s.selector.SetQuery(text)
}

// Candidates returns the vehicles matching the current query
func (s *Session) Candidates() []catalog.Vehicle {
	s.mustInit()
	return s.selector.Candidates()
}

// SelectVehicle selects a catalog vehicle by id; false when unknown
func (s *Session) SelectVehicle(id string) bool {
	s.mustInit()
	return s.selector.SelectByID(id)
}

// ClearVehicle unsets the vehicle
func (s *Session) ClearVehicle() {
	s.mustInit()
	s.selector.Clear()
}

// Mode returns the active tab
func (s *Session) Mode() filter.Mode {
	s.mustInit()
	return s.mode
}

// SetMode switches the tab
func (s *Session) SetMode(m filter.Mode) {
	s.mustInit()
	s.mode = m
}

// Selections returns the attribute refinements
func (s *Session) Selections() filter.Selections {
	s.mustInit()
	return s.selections
}

// SetSelections replaces the attribute refinements
func (s *Session) SetSelections(sel filter.Selections) {
	s.mustInit()
	s.selections = sel
}

// ClearSelections unsets all refinements
func (s *Session) ClearSelections() {
	s.mustInit()
	s.selections = filter.Selections{}
}

// View derives the product area from the current state
func (s *Session) View() View {
	s.mustInit()
	return s.presenter.Present(s.selector.Selected(), s.mode, s.selections)
}

// AddToCart adds the catalog product and raises the added flag.
// It reports false for unknown product ids.
func (s *Session) AddToCart(productID string) bool {
	s.mustInit()
	p, ok := s.catalog.Product(productID)
	if !ok {
		return false
	}
	s.cart.Add(p)
	s.notice.Flag(p.ID)
	return true
}

// RemoveFromCart drops a product from the cart
func (s *Session) RemoveFromCart(productID string) {
	s.mustInit()
	s.cart.Remove(productID)
}

// SetCartQuantity overwrites a quantity; zero or less removes
func (s *Session) SetCartQuantity(productID string, quantity int) {
	s.mustInit()
	s.cart.SetQuantity(productID, quantity)
}

// ClearCart empties the cart
func (s *Session) ClearCart() {
	s.mustInit()
	s.cart.Clear()
}

// Close cancels pending timers; the session must not be used afterwards
func (s *Session) Close() {
	if s == nil || s.notice == nil {
		return
	}
	s.notice.Stop()
}
