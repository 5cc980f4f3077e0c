// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"

	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migration handles catalog schema and seed data
type Migration struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log *logrus.Logger) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for the catalog models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("🔄 Running database auto-migrations...")

	models := []interface{}{
		&catalog.Vehicle{},
		&catalog.Product{},
	}

	for _, model := range models {
		m.log.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates the indexes the storefront queries rely on
func (m *Migration) CreateIndexes() error {
	m.log.Info("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_vehicles_position ON vehicles(position, id)",
		"CREATE INDEX IF NOT EXISTS idx_products_position ON products(position, id)",
		"CREATE INDEX IF NOT EXISTS idx_products_size_price ON products(compatible_tire_size, price)",
		"CREATE INDEX IF NOT EXISTS idx_products_popular ON products(is_popular, reviews DESC)",
	}

	failCount := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("⚠️ Failed to create index")
			failCount++
		}
	}

	m.log.Infof("✅ Created %d indexes successfully (%d failed)", len(indexes)-failCount, failCount)
	return nil
}

// SeedCatalog upserts the feed. Existing rows are overwritten so re-seeding
// after a feed change is safe; rows absent from the feed are kept.
func (m *Migration) SeedCatalog(ctx context.Context, feed *catalog.Feed) error {
	m.log.WithFields(logrus.Fields{
		"vehicles": len(feed.Vehicles),
		"products": len(feed.Products),
	}).Info("🌱 Seeding catalog...")

	// Validate before touching the tables
	if _, err := catalog.NewSnapshot(feed.Vehicles, feed.Products); err != nil {
		return fmt.Errorf("refusing to seed: %w", err)
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		if err := upsert.CreateInBatches(feed.Vehicles, 100).Error; err != nil {
			return fmt.Errorf("failed to seed vehicles: %w", err)
		}
		if err := upsert.CreateInBatches(feed.Products, 100).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.log.Info("✅ Catalog seeded successfully")
	return nil
}

// SeedInitialData seeds the built-in demo catalog when the tables are empty
func (m *Migration) SeedInitialData(ctx context.Context) error {
	var count int64
	if err := m.db.WithContext(ctx).Model(&catalog.Vehicle{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count vehicles: %w", err)
	}
	if count > 0 {
		m.log.Info("⏭️ Catalog already seeded")
		return nil
	}

	feed, err := catalog.DefaultFeed()
	if err != nil {
		return err
	}
	return m.SeedCatalog(ctx, feed)
}

// GetTableInfo logs row counts for the catalog tables
func (m *Migration) GetTableInfo(ctx context.Context) error {
	for _, table := range []string{"vehicles", "products"} {
		var count int64
		if err := m.db.WithContext(ctx).Table(table).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count %s: %w", table, err)
		}

		status := "✅"
		if count == 0 {
			status = "📭"
		}
		m.log.Infof("%s %-10s | %d records", status, table, count)
	}
	return nil
}
