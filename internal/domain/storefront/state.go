// internal/domain/storefront/state.go
package storefront

import (
	"github.com/ogtriplek/tyre-storefront/internal/domain/cart"
	"github.com/ogtriplek/tyre-storefront/internal/domain/filter"
)

// SessionState is the serialisable form of a session, used by session stores.
// The added-to-cart flag is cosmetic and not carried.
type SessionState struct {
	VehicleID  string            `json:"vehicle_id,omitempty"`
	Query      string            `json:"query,omitempty"`
	PickerOpen bool              `json:"picker_open,omitempty"`
	Mode       filter.Mode       `json:"mode"`
	Selections filter.Selections `json:"selections"`
	Cart       []cart.Entry      `json:"cart"`
}

// State captures the session
func (s *Session) State() SessionState {
	s.mustInit()
	st := SessionState{
		Query:      s.selector.Query(),
		PickerOpen: s.selector.IsOpen(),
		Mode:       s.mode,
		Selections: s.selections,
		Cart:       s.cart.Items(),
	}
	if v := s.selector.Selected(); v != nil {
		st.VehicleID = v.ID
	}
	return st
}

// Restore rebuilds a session. A vehicle id no longer in the catalog leaves
// no selection and an unknown mode falls back to the default tab.
func Restore(c Catalog, st SessionState, opts ...Option) *Session {
	s := NewSession(c, opts...)

	if st.VehicleID != "" {
		s.selector.SelectByID(st.VehicleID)
	}
	s.selector.SetQuery(st.Query)
	s.selector.SetOpen(st.PickerOpen)

	if m, err := filter.ParseMode(string(st.Mode)); err == nil {
		s.mode = m
	}
	s.selections = st.Selections
	s.cart = cart.FromEntries(st.Cart)

	return s
}
