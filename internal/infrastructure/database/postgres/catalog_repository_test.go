package postgres

import (
	"context"
	"testing"

	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds statements without a server
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=test dbname=test sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestLoadOrdersByPosition(t *testing.T) {
	db := dryRunDB(t)

	stmt := db.Order("position ASC").Order("id ASC").Find(&[]catalog.Product{}).Statement
	assert.Equal(t, `SELECT * FROM "products" ORDER BY position ASC,id ASC`, stmt.SQL.String())
}

func TestLoadWithoutRows(t *testing.T) {
	snap, err := NewCatalogRepository(dryRunDB(t)).Load(context.Background())
	require.NoError(t, err)

	vehicles, products := snap.Len()
	assert.Zero(t, vehicles)
	assert.Zero(t, products)
}
