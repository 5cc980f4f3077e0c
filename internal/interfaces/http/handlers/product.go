// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
)

// ProductHandler serves the derived product area
type ProductHandler struct {
	store storefront.Store
}

// NewProductHandler creates a new product handler
func NewProductHandler(store storefront.Store) *ProductHandler {
	return &ProductHandler{store: store}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var view storefront.View
	if !withSession(c, h.store, func(s *storefront.Session) error {
		view = s.View()
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    view,
	})
}
