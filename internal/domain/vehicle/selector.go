// internal/domain/vehicle/selector.go
package vehicle

import (
	"strings"

	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
)

// Selector holds the chosen vehicle and the search query typed into the picker
type Selector struct {
	vehicles []catalog.Vehicle
	selected *catalog.Vehicle
	query    string
	open     bool
}

// NewSelector creates a selector over the catalog vehicles
func NewSelector(vehicles []catalog.Vehicle) *Selector {
	return &Selector{
		vehicles: vehicles,
	}
}

func (s *Selector) mustInit() {
	if s == nil {
		panic("vehicle: selector used before initialization")
	}
}

// SetQuery records the free-text query. An empty query means no filter.
func (s *Selector) SetQuery(text string) {
	s.mustInit()
	s.query = text
}

// Query returns the current query
func (s *Selector) Query() string {
	s.mustInit()
	return s.query
}

// Selected returns the chosen vehicle, or nil
func (s *Selector) Selected() *catalog.Vehicle {
	s.mustInit()
	if s.selected == nil {
		return nil
	}
	v := *s.selected
	return &v
}

// IsOpen reports whether the picker is open
func (s *Selector) IsOpen() bool {
	s.mustInit()
	return s.open
}

// SetOpen opens or closes the picker
func (s *Selector) SetOpen(open bool) {
	s.mustInit()
	s.open = open
}

// Toggle flips the picker open state
func (s *Selector) Toggle() {
	s.mustInit()
	s.open = !s.open
}

// Candidates returns the vehicles matching the query. The selected vehicle,
// when it matches, comes first; everything else keeps catalog order.
func (s *Selector) Candidates() []catalog.Vehicle {
	s.mustInit()

	query := strings.ToLower(s.query)
	out := make([]catalog.Vehicle, 0, len(s.vehicles))
	selectedAt := -1

	for i := range s.vehicles {
		v := &s.vehicles[i]
		if query != "" && !Matches(v, query) {
			continue
		}
		if s.selected != nil && selectedAt < 0 && v.ID == s.selected.ID {
			selectedAt = len(out)
		}
		out = append(out, *v)
	}

	if selectedAt > 0 {
		sel := out[selectedAt]
		copy(out[1:selectedAt+1], out[:selectedAt])
		out[0] = sel
	}

	return out
}

// Select chooses a vehicle, closes the picker and clears the query.
// The vehicle does not have to come from the catalog.
func (s *Selector) Select(v catalog.Vehicle) {
	s.mustInit()
	s.selected = &v
	s.open = false
	s.query = ""
}

// SelectByID selects the catalog vehicle with the given id.
// It reports false and leaves the state untouched when the id is unknown.
func (s *Selector) SelectByID(id string) bool {
	s.mustInit()
	for _, v := range s.vehicles {
		if v.ID == id {
			s.Select(v)
			return true
		}
	}
	return false
}

// Clear unsets the selection, closes the picker and clears the query
func (s *Selector) Clear() {
	s.mustInit()
	s.selected = nil
	s.open = false
	s.query = ""
}

// Matches reports whether the lower-cased query is a substring of the
// vehicle's year, model, make or title (case-insensitive).
func Matches(v *catalog.Vehicle, lowerQuery string) bool {
	if year := v.YearString(); year != "" && strings.Contains(year, lowerQuery) {
		return true
	}
	return strings.Contains(strings.ToLower(v.Model), lowerQuery) ||
		strings.Contains(strings.ToLower(v.Make), lowerQuery) ||
		strings.Contains(strings.ToLower(v.Title), lowerQuery)
}
