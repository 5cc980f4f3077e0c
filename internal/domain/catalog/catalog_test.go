package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFeed(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	vehicles, products := s.Len()
	assert.Equal(t, 10, vehicles)
	assert.Equal(t, 25, products)

	v, ok := s.Vehicle("car-1")
	require.True(t, ok)
	assert.Equal(t, "225/50R17", v.TireSize)
	assert.Equal(t, 2025, v.Year)

	p, ok := s.Product("michelin-primacy-1")
	require.True(t, ok)
	assert.Equal(t, int64(4120), p.Price)
	comfort, ok := p.Attributes.Score(AttrComfort)
	require.True(t, ok)
	assert.Equal(t, 5, comfort)
	assert.True(t, p.HasTag("Run Flat"))
}

func TestCompatibleWithIsExactMatch(t *testing.T) {
	v := &Vehicle{ID: "v", TireSize: "225/50R17"}

	assert.True(t, (&Product{CompatibleTireSize: "225/50R17"}).CompatibleWith(v))
	assert.False(t, (&Product{CompatibleTireSize: "225/50r17"}).CompatibleWith(v))
	assert.False(t, (&Product{CompatibleTireSize: "225/50R17 "}).CompatibleWith(v))
	assert.False(t, (&Product{CompatibleTireSize: ""}).CompatibleWith(v))
}

func TestSnapshotOrdersByPositionStably(t *testing.T) {
	s, err := NewSnapshot(
		[]Vehicle{{ID: "b", Position: 2}, {ID: "a", Position: 1}},
		[]Product{{ID: "x", Position: 1}, {ID: "y", Position: 0}, {ID: "z", Position: 1}},
	)
	require.NoError(t, err)

	assert.Equal(t, "a", s.Vehicles()[0].ID)

	var ids []string
	for _, p := range s.Products() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"y", "x", "z"}, ids)
}

func TestSnapshotRejectsBadRecords(t *testing.T) {
	_, err := NewSnapshot([]Vehicle{{ID: "a"}, {ID: "a"}}, nil)
	assert.True(t, errors.Is(err, ErrInvalidCatalog))

	_, err = NewSnapshot(nil, []Product{{ID: ""}})
	assert.True(t, errors.Is(err, ErrInvalidCatalog))
}

func TestSnapshotReturnsCopies(t *testing.T) {
	s, err := NewSnapshot(nil, []Product{{ID: "p", Tags: []string{"SUV"}}})
	require.NoError(t, err)

	products := s.Products()
	products[0].Tags[0] = "changed"
	products[0].Price = 999

	again := s.Products()
	assert.Equal(t, "SUV", again[0].Tags[0])
	assert.Equal(t, int64(0), again[0].Price)
}

func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("vehicles:\n  - id: a\n    wheels: 4\n"))
	assert.Error(t, err)
}

func TestAttributesScoreMissing(t *testing.T) {
	a := Attributes{Noise: Score(3)}

	_, ok := a.Score(AttrComfort)
	assert.False(t, ok)

	n, ok := a.Score(AttrNoise)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = a.Score("grip")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := "vehicles:\n  - id: v1\n    title: Civic\n    tire_size: 205/55R16\nproducts:\n  - id: p1\n    brand: Petlas\n    name: Elegant\n    price: 1900\n    compatible_tire_size: 205/55R16\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	vehicles, products := s.Len()
	assert.Equal(t, 1, vehicles)
	assert.Equal(t, 1, products)

	feed, err := ReadFeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, "p1", feed.Products[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
