// internal/domain/catalog/snapshot.go
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrInvalidCatalog is returned when a feed contains unusable records
var ErrInvalidCatalog = errors.New("invalid catalog")

// Source is the read-only catalog feed consumed by the storefront.
// Both calls are total and return the same values for the lifetime of the source.
type Source interface {
	Vehicles() []Vehicle
	Products() []Product
}

// Snapshot is an immutable catalog held for the lifetime of the process
type Snapshot struct {
	vehicles     []Vehicle
	products     []Product
	vehicleIndex map[string]int
	productIndex map[string]int
}

// NewSnapshot validates the records and freezes them in Position order.
// Records sharing a position keep their input order.
func NewSnapshot(vehicles []Vehicle, products []Product) (*Snapshot, error) {
	s := &Snapshot{
		vehicles:     slices.Clone(vehicles),
		products:     make([]Product, len(products)),
		vehicleIndex: make(map[string]int, len(vehicles)),
		productIndex: make(map[string]int, len(products)),
	}
	for i := range products {
		s.products[i] = products[i]
		s.products[i].Tags = slices.Clone(products[i].Tags)
	}

	sort.SliceStable(s.vehicles, func(i, j int) bool { return s.vehicles[i].Position < s.vehicles[j].Position })
	sort.SliceStable(s.products, func(i, j int) bool { return s.products[i].Position < s.products[j].Position })

	for i, v := range s.vehicles {
		if v.ID == "" {
			return nil, fmt.Errorf("%w: vehicle at position %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := s.vehicleIndex[v.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate vehicle id %q", ErrInvalidCatalog, v.ID)
		}
		s.vehicleIndex[v.ID] = i
	}

	for i, p := range s.products {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: product at position %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := s.productIndex[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", ErrInvalidCatalog, p.ID)
		}
		s.productIndex[p.ID] = i
	}

	return s, nil
}

// Vehicles returns a copy of the vehicles in catalog order
func (s *Snapshot) Vehicles() []Vehicle {
	return slices.Clone(s.vehicles)
}

// Products returns a copy of the products in catalog order
func (s *Snapshot) Products() []Product {
	out := make([]Product, len(s.products))
	for i := range s.products {
		out[i] = s.products[i]
		out[i].Tags = slices.Clone(s.products[i].Tags)
	}
	return out
}

// Vehicle looks a vehicle up by id
func (s *Snapshot) Vehicle(id string) (Vehicle, bool) {
	i, ok := s.vehicleIndex[id]
	if !ok {
		return Vehicle{}, false
	}
	return s.vehicles[i], true
}

// Product looks a product up by id
func (s *Snapshot) Product(id string) (Product, bool) {
	i, ok := s.productIndex[id]
	if !ok {
		return Product{}, false
	}
	p := s.products[i]
	p.Tags = slices.Clone(p.Tags)
	return p, true
}

// Len returns the number of vehicles and products
func (s *Snapshot) Len() (vehicles, products int) {
	return len(s.vehicles), len(s.products)
}
