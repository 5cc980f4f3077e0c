// internal/infrastructure/database/postgres/catalog_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"gorm.io/gorm"
)

// CatalogRepository reads the catalog tables
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Load reads every vehicle and product into an immutable snapshot
func (r *CatalogRepository) Load(ctx context.Context) (*catalog.Snapshot, error) {
	var vehicles []catalog.Vehicle
	if err := r.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return catalog.NewSnapshot(vehicles, products)
}
