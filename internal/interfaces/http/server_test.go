package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogtriplek/tyre-storefront/internal/config"
	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
	"github.com/ogtriplek/tyre-storefront/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCheck struct{}

func (failingCheck) Health(context.Context) error { return errors.New("connection refused") }

type okCheck struct{}

func (okCheck) Health(context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "Tyre Storefront", Version: "test", Environment: "test"},
		Server: config.ServerConfig{Port: "0", RequestTimeout: 5 * time.Second},
		Session: config.SessionConfig{
			Store:      config.SessionStoreMemory,
			Secret:     "0123456789abcdef0123456789abcdef",
			TTL:        time.Hour,
			CookieName: "session_id",
		},
	}
}

func newTestServer(t *testing.T, checks map[string]HealthChecker) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := catalog.Default()
	require.NoError(t, err)
	store := storefront.NewMemoryStore(c, time.Hour)
	t.Cleanup(store.Close)

	srv := NewServer(testConfig(), Options{
		Catalog: c,
		Store:   store,
		Checks:  checks,
		Logger:  logger.Discard(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// client keeps the session cookie between calls
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, ts *httptest.Server) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: ts.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

type productsBody struct {
	State    string `json:"state"`
	Products []struct {
		ID    string `json:"id"`
		Price int64  `json:"price"`
	} `json:"products"`
	Counts       map[string]int `json:"counts"`
	PriceBuckets []struct {
		Key   string `json:"key"`
		Count int    `json:"count"`
	} `json:"price_buckets"`
}

func (b productsBody) ids() []string {
	out := make([]string, 0, len(b.Products))
	for _, p := range b.Products {
		out = append(out, p.ID)
	}
	return out
}

type cartBody struct {
	Items []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	Totals struct {
		TotalQuantity int   `json:"total_quantity"`
		TotalAmount   int64 `json:"total_amount"`
	} `json:"totals"`
	JustAdded string `json:"just_added"`
}

func TestStorefrontFlow(t *testing.T) {
	ts := newTestServer(t, nil)
	c := newClient(t, ts)

	var products envelope[productsBody]
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/products", nil, &products))
	assert.Equal(t, "select_vehicle", products.Data.State)
	assert.Empty(t, products.Data.Products)

	var failed envelope[any]
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPut, "/api/v1/selector/vehicle", gin.H{"vehicle_id": "nope"}, &failed))
	assert.Equal(t, "Vehicle not found", failed.Error)

	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/v1/selector/vehicle", gin.H{"vehicle_id": "car-1"}, nil))

	products = envelope[productsBody]{}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/products", nil, &products))
	assert.Equal(t, "results", products.Data.State)
	assert.Len(t, products.Data.Products, 7)
	assert.Equal(t, 7, products.Data.Counts["all"])
	assert.Equal(t, 5, products.Data.Counts["popular"])

	buckets := make([]string, 0, len(products.Data.PriceBuckets))
	for _, b := range products.Data.PriceBuckets {
		buckets = append(buckets, b.Key)
	}
	assert.Equal(t, []string{"2000-4000", "4000-6000"}, buckets)

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, "/api/v1/filters/category", gin.H{"mode": "cheapest"}, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/v1/filters/category", gin.H{"mode": "price_high_low"}, nil))

	products = envelope[productsBody]{}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/products", nil, &products))
	assert.Equal(t, []string{
		"continental-premium-c200", "michelin-primacy-c200", "michelin-primacy-1",
		"continental-premium-1", "bridgestone-turanza-1", "yokohama-adv-1", "petlas-pt311-1",
	}, products.Data.ids())

	var filters envelope[struct {
		Counts map[string]int `json:"counts"`
	}]
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/v1/filters/attributes", gin.H{"brand": "michelin"}, &filters))
	assert.Equal(t, map[string]int{"all": 2, "popular": 2, "price_low_high": 2, "price_high_low": 2}, filters.Data.Counts)

	products = envelope[productsBody]{}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/products", nil, &products))
	assert.Equal(t, []string{"michelin-primacy-c200", "michelin-primacy-1"}, products.Data.ids())

	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/api/v1/filters/attributes", nil, nil))
	products = envelope[productsBody]{}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/products", nil, &products))
	assert.Len(t, products.Data.Products, 7)
}

func TestCartEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)
	c := newClient(t, ts)

	var added envelope[cartBody]
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "michelin-primacy-1"}, &added))
	assert.Equal(t, "michelin-primacy-1", added.Data.JustAdded)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "michelin-primacy-1"}, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "yokohama-adv-1"}, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "nope"}, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/cart/items", gin.H{}, nil))

	var count envelope[struct {
		Count int `json:"count"`
	}]
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/cart/count", nil, &count))
	assert.Equal(t, 3, count.Data.Count)

	var cart envelope[cartBody]
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/cart", nil, &cart))
	assert.Equal(t, int64(10720), cart.Data.Totals.TotalAmount)
	require.Len(t, cart.Data.Items, 2)
	assert.Equal(t, "michelin-primacy-1", cart.Data.Items[0].ProductID)
	assert.Equal(t, 2, cart.Data.Items[0].Quantity)

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, "/api/v1/cart/items/michelin-primacy-1", gin.H{"quantity": 1000}, nil))
	assert.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/v1/cart/items/michelin-primacy-1", gin.H{"quantity": 999}, nil))

	cart = envelope[cartBody]{}
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/v1/cart/items/michelin-primacy-1", gin.H{"quantity": 0}, &cart))
	require.Len(t, cart.Data.Items, 1)
	assert.Equal(t, "yokohama-adv-1", cart.Data.Items[0].ProductID)

	cart = envelope[cartBody]{}
	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/api/v1/cart", nil, &cart))
	assert.Empty(t, cart.Data.Items)
	assert.Equal(t, 0, cart.Data.Totals.TotalQuantity)
}

func TestSessionsAreIsolated(t *testing.T) {
	ts := newTestServer(t, nil)
	alice, bob := newClient(t, ts), newClient(t, ts)

	require.Equal(t, http.StatusOK, alice.do(http.MethodPut, "/api/v1/selector/vehicle", gin.H{"vehicle_id": "car-1"}, nil))
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "yokohama-adv-1"}, nil))

	var products envelope[productsBody]
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/v1/products", nil, &products))
	assert.Equal(t, "select_vehicle", products.Data.State)

	var count envelope[struct {
		Count int `json:"count"`
	}]
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/v1/cart/count", nil, &count))
	assert.Equal(t, 0, count.Data.Count)
}

func TestCatalogEndpointsArePublic(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/catalog/vehicles?q=accord")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Cookies(), "catalog reads do not start a session")

	var vehicles envelope[struct {
		Vehicles []struct {
			ID string `json:"id"`
		} `json:"vehicles"`
		Total int `json:"total"`
	}]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&vehicles))
	require.Equal(t, 1, vehicles.Data.Total)
	assert.Equal(t, "car-1", vehicles.Data.Vehicles[0].ID)

	c := newClient(t, ts)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/catalog/products/nope", nil, nil))
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, map[string]HealthChecker{"redis": okCheck{}})
	c := newClient(t, ts)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", nil, nil))

	ts = newTestServer(t, map[string]HealthChecker{"database": failingCheck{}})
	c = newClient(t, ts)
	var body map[string]any
	assert.Equal(t, http.StatusServiceUnavailable, c.do(http.MethodGet, "/health", nil, &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "database ping failed", body["error"])
}

func TestReadyReportsCatalogSize(t *testing.T) {
	ts := newTestServer(t, nil)
	c := newClient(t, ts)

	var body struct {
		Status  string `json:"status"`
		Catalog struct {
			Vehicles int `json:"vehicles"`
			Products int `json:"products"`
		} `json:"catalog"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/ready", nil, &body))

	cat, err := catalog.Default()
	require.NoError(t, err)
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, len(cat.Vehicles()), body.Catalog.Vehicles)
	assert.Equal(t, len(cat.Products()), body.Catalog.Products)
}
