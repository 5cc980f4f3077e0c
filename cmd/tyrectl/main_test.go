package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ogtriplek/tyre-storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubConfig(t *testing.T) {
	t.Helper()
	prev := loadConfig
	loadConfig = func() (*config.Config, error) {
		return &config.Config{
			Server:  config.ServerConfig{Port: "8080"},
			Catalog: config.CatalogConfig{Source: config.CatalogEmbedded},
			Session: config.SessionConfig{
				Store:      config.SessionStoreMemory,
				Secret:     "0123456789abcdef0123456789abcdef",
				TTL:        time.Hour,
				CookieName: "session_id",
			},
			Logging: config.LoggingConfig{Level: "error", Format: "text"},
		}, nil
	}
	t.Cleanup(func() { loadConfig = prev })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVehiclesQuery(t *testing.T) {
	stubConfig(t)

	out, err := run(t, "vehicles", "--query", "ACCORD")
	require.NoError(t, err)
	assert.Contains(t, out, "car-1")
	assert.Contains(t, out, "225/50R17")
	assert.NotContains(t, out, "car-2")

	out, err = run(t, "vehicles", "-q", "zeppelin")
	require.NoError(t, err)
	assert.Contains(t, out, `no vehicles match "zeppelin"`)
}

func TestProductsForVehicle(t *testing.T) {
	stubConfig(t)

	out, err := run(t, "products", "--vehicle", "car-1", "--mode", "price_high_low", "--brand", "michelin")
	require.NoError(t, err)

	c200 := strings.Index(out, "michelin-primacy-c200")
	primacy := strings.Index(out, "michelin-primacy-1")
	require.NotEqual(t, -1, c200)
	require.NotEqual(t, -1, primacy)
	assert.Less(t, c200, primacy)
	assert.NotContains(t, out, "yokohama-adv-1")
	assert.Contains(t, out, "counts: all=2 popular=2 price_low_high=2 price_high_low=2")
}

func TestProductsNoMatches(t *testing.T) {
	stubConfig(t)

	out, err := run(t, "products", "--vehicle", "car-1", "--brand", "nobody")
	require.NoError(t, err)
	assert.NotContains(t, out, "counts:")
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestProductsErrors(t *testing.T) {
	stubConfig(t)

	_, err := run(t, "products", "--vehicle", "car-404")
	assert.ErrorContains(t, err, `unknown vehicle "car-404"`)

	_, err = run(t, "products", "--vehicle", "car-1", "--mode", "cheapest")
	assert.Error(t, err)

	_, err = run(t, "products")
	assert.Error(t, err, "--vehicle is required")
}

func TestFileSource(t *testing.T) {
	stubConfig(t)

	path := filepath.Join(t.TempDir(), "feed.yaml")
	doc := "vehicles:\n  - id: v1\n    title: Test Wagon\n    tire_size: 205/55R16\nproducts:\n  - id: p1\n    brand: Petlas\n    name: Elegant\n    price: 1900\n    compatible_tire_size: 205/55R16\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := run(t, "--file", path, "products", "--vehicle", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "p1")
	assert.Contains(t, out, "counts: all=1")
}

func TestSeedRejectsUnknownTarget(t *testing.T) {
	stubConfig(t)

	_, err := run(t, "seed", "--target", "mysql")
	assert.ErrorContains(t, err, "cannot seed")

	_, err = run(t, "seed")
	assert.Error(t, err)
}
