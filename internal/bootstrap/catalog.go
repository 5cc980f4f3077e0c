// internal/bootstrap/catalog.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/ogtriplek/tyre-storefront/internal/config"
	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/ogtriplek/tyre-storefront/internal/infrastructure/database/dynamo"
	"github.com/ogtriplek/tyre-storefront/internal/infrastructure/database/postgres"
	"github.com/sirupsen/logrus"
)

// Resources holds the connections opened while loading the catalog
type Resources struct {
	DB *postgres.DB
}

// Close releases every connection
func (r *Resources) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// LoadCatalog reads the catalog from the configured source. The returned
// resources stay open so they can be health checked; close them on shutdown.
func LoadCatalog(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*catalog.Snapshot, *Resources, error) {
	res := &Resources{}

	var (
		snap *catalog.Snapshot
		err  error
	)
	switch cfg.Catalog.Source {
	case config.CatalogEmbedded:
		snap, err = catalog.Default()
	case config.CatalogFile:
		snap, err = catalog.LoadFile(cfg.Catalog.File)
	case config.CatalogPostgres:
		snap, err = loadPostgres(ctx, cfg, log, res)
	case config.CatalogDynamoDB:
		snap, err = loadDynamo(ctx, cfg, log)
	default:
		err = fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
	if err != nil {
		return nil, nil, errors.Join(err, res.Close())
	}

	vehicles, products := snap.Len()
	log.WithFields(logrus.Fields{
		"source":   cfg.Catalog.Source,
		"vehicles": vehicles,
		"products": products,
	}).Info("📦 Catalog loaded")

	return snap, res, nil
}

func loadPostgres(ctx context.Context, cfg *config.Config, log *logrus.Logger, res *Resources) (*catalog.Snapshot, error) {
	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		return nil, err
	}
	res.DB = db

	if err := db.Health(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	if cfg.Database.AutoMigrate {
		migration := postgres.NewMigration(db.GetDB(), log)
		if err := migration.RunAutoMigrations(); err != nil {
			return nil, err
		}
		if err := migration.CreateIndexes(); err != nil {
			log.WithError(err).Warn("Index creation failed")
		}
		if cfg.Database.Seed {
			if err := migration.SeedInitialData(ctx); err != nil {
				log.WithError(err).Warn("Catalog seeding failed")
			}
		}
		if cfg.IsDevelopment() {
			_ = migration.GetTableInfo(ctx)
		}
	}

	return postgres.NewCatalogRepository(db.GetDB()).Load(ctx)
}

func loadDynamo(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*catalog.Snapshot, error) {
	client, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	repo := dynamo.NewCatalogRepository(client, cfg.Dynamo.VehiclesTable, cfg.Dynamo.ProductsTable, log)

	if cfg.Dynamo.Seed {
		if err := repo.EnsureTables(ctx); err != nil {
			return nil, err
		}
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if vehicles, _ := snap.Len(); vehicles == 0 && cfg.Dynamo.Seed {
		feed, err := catalog.DefaultFeed()
		if err != nil {
			return nil, err
		}
		if err := repo.Seed(ctx, feed); err != nil {
			return nil, err
		}
		return repo.Load(ctx)
	}
	return snap, nil
}

// Seed writes feed into the given target, creating tables first
func Seed(ctx context.Context, cfg *config.Config, log *logrus.Logger, target string, feed *catalog.Feed) error {
	switch target {
	case config.CatalogPostgres:
		db, err := postgres.NewConnection(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()

		migration := postgres.NewMigration(db.GetDB(), log)
		if err := migration.RunAutoMigrations(); err != nil {
			return err
		}
		if err := migration.CreateIndexes(); err != nil {
			log.WithError(err).Warn("Index creation failed")
		}
		return migration.SeedCatalog(ctx, feed)

	case config.CatalogDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return err
		}
		repo := dynamo.NewCatalogRepository(client, cfg.Dynamo.VehiclesTable, cfg.Dynamo.ProductsTable, log)
		if err := repo.EnsureTables(ctx); err != nil {
			return err
		}
		return repo.Seed(ctx, feed)

	default:
		return fmt.Errorf("cannot seed %q: choose %s or %s", target, config.CatalogPostgres, config.CatalogDynamoDB)
	}
}
