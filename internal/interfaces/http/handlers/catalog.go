// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/ogtriplek/tyre-storefront/internal/domain/filter"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
	"github.com/ogtriplek/tyre-storefront/internal/domain/vehicle"
)

// CatalogHandler serves the raw catalog feed
type CatalogHandler struct {
	catalog storefront.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(c storefront.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// ListVehicles handles GET /catalog/vehicles?q=
func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	vehicles := h.catalog.Vehicles()

	if q := strings.ToLower(c.Query("q")); q != "" {
		matched := make([]catalog.Vehicle, 0, len(vehicles))
		for i := range vehicles {
			if vehicle.Matches(&vehicles[i], q) {
				matched = append(matched, vehicles[i])
			}
		}
		vehicles = matched
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicles retrieved successfully",
		"data": gin.H{
			"vehicles": vehicles,
			"total":    len(vehicles),
		},
	})
}

// GetVehicle handles GET /catalog/vehicles/:id
func (h *CatalogHandler) GetVehicle(c *gin.Context) {
	v, ok := h.catalog.Vehicle(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Vehicle not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle retrieved successfully",
		"data":    v,
	})
}

// ListProducts handles GET /catalog/products?tire_size=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products := h.catalog.Products()

	if size := c.Query("tire_size"); size != "" {
		products = filter.Compatible(products, &catalog.Vehicle{TireSize: size})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data": gin.H{
			"products": products,
			"total":    len(products),
		},
	})
}

// GetProduct handles GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, ok := h.catalog.Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    p,
	})
}
