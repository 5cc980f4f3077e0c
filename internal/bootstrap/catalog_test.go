package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ogtriplek/tyre-storefront/internal/config"
	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/ogtriplek/tyre-storefront/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogEmbedded(t *testing.T) {
	cfg := &config.Config{Catalog: config.CatalogConfig{Source: config.CatalogEmbedded}}

	snap, res, err := LoadCatalog(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer res.Close()

	want, err := catalog.Default()
	require.NoError(t, err)
	assert.Equal(t, want.Products(), snap.Products())
	assert.Nil(t, res.DB)
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.yaml")
	doc := "vehicles:\n  - id: v1\n    title: Civic\n    tire_size: 205/55R16\nproducts: []\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg := &config.Config{Catalog: config.CatalogConfig{Source: config.CatalogFile, File: path}}
	snap, res, err := LoadCatalog(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer res.Close()

	vehicles, products := snap.Len()
	assert.Equal(t, 1, vehicles)
	assert.Equal(t, 0, products)
}

func TestLoadCatalogErrors(t *testing.T) {
	cfg := &config.Config{Catalog: config.CatalogConfig{Source: config.CatalogFile, File: "/does/not/exist.yaml"}}
	_, _, err := LoadCatalog(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)

	cfg.Catalog.Source = "mysql"
	_, _, err = LoadCatalog(context.Background(), cfg, logger.Discard())
	assert.ErrorContains(t, err, "unknown catalog source")
}

func TestSeedRejectsUnknownTarget(t *testing.T) {
	feed, err := catalog.DefaultFeed()
	require.NoError(t, err)

	err = Seed(context.Background(), &config.Config{}, logger.Discard(), config.CatalogFile, feed)
	assert.ErrorContains(t, err, "cannot seed")
}

func TestNilResourcesClose(t *testing.T) {
	var res *Resources
	assert.NoError(t, res.Close())
}
