// internal/interfaces/http/handlers/filter.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogtriplek/tyre-storefront/internal/domain/filter"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
	"github.com/sirupsen/logrus"
)

// FilterHandler drives the category tabs and attribute refinements
type FilterHandler struct {
	store storefront.Store
	log   *logrus.Logger
}

// NewFilterHandler creates a new filter handler
func NewFilterHandler(store storefront.Store, log *logrus.Logger) *FilterHandler {
	return &FilterHandler{store: store, log: log}
}

// SetCategoryRequest is the body of PUT /filters/category
type SetCategoryRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// SetAttributesRequest is the body of PUT /filters/attributes. Empty or
// missing fields leave that refinement unset.
type SetAttributesRequest struct {
	Brand      string `json:"brand"`
	PriceRange string `json:"price_range"`
	Feature    string `json:"feature"`
}

func (r SetAttributesRequest) selections() filter.Selections {
	var sel filter.Selections
	if r.Brand != "" {
		sel.Brand = &r.Brand
	}
	if r.PriceRange != "" {
		sel.PriceRange = &r.PriceRange
	}
	if r.Feature != "" {
		sel.Feature = &r.Feature
	}
	return sel
}

// FiltersResponse is the filter state with badge counts
type FiltersResponse struct {
	Mode       filter.Mode       `json:"mode"`
	Selections filter.Selections `json:"selections"`
	Counts     filter.Counts     `json:"counts"`
}

func filtersResponse(s *storefront.Session) FiltersResponse {
	view := s.View()
	return FiltersResponse{
		Mode:       s.Mode(),
		Selections: s.Selections(),
		Counts:     view.Counts,
	}
}

// GetFilters handles GET /filters
func (h *FilterHandler) GetFilters(c *gin.Context) {
	var resp FiltersResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		resp = filtersResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Filters retrieved successfully",
		"data":    resp,
	})
}

// GetOptions handles GET /filters/options. Price buckets are the canonical
// ranges spanning the selected vehicle's compatible products.
func (h *FilterHandler) GetOptions(c *gin.Context) {
	var buckets []filter.BucketCount
	if !withSession(c, h.store, func(s *storefront.Session) error {
		buckets = s.View().PriceBuckets
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Filter options retrieved successfully",
		"data": gin.H{
			"modes":         filter.Modes(),
			"brands":        filter.Brands(),
			"price_ranges":  filter.PriceRanges(),
			"features":      filter.Features(),
			"price_buckets": buckets,
		},
	})
}

// SetCategory handles PUT /filters/category
func (h *FilterHandler) SetCategory(c *gin.Context) {
	var req SetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	mode, err := filter.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid category",
			"details": err.Error(),
		})
		return
	}

	var resp FiltersResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		s.SetMode(mode)
		resp = filtersResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category updated successfully",
		"data":    resp,
	})
}

// SetAttributes handles PUT /filters/attributes. Unknown price ranges and
// features are accepted and simply match nothing.
func (h *FilterHandler) SetAttributes(c *gin.Context) {
	var req SetAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sel := req.selections()
	if sel.PriceRange != nil {
		if _, ok := filter.LookupPriceRange(*sel.PriceRange); !ok {
			h.log.WithField("price_range", *sel.PriceRange).Warn("unknown price range selected")
		}
	}
	if sel.Feature != nil && !filter.KnownFeature(*sel.Feature) {
		h.log.WithField("feature", *sel.Feature).Warn("unknown feature selected")
	}

	var resp FiltersResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		s.SetSelections(sel)
		resp = filtersResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attribute filters updated successfully",
		"data":    resp,
	})
}

// ClearAttributes handles DELETE /filters/attributes
func (h *FilterHandler) ClearAttributes(c *gin.Context) {
	var resp FiltersResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		s.ClearSelections()
		resp = filtersResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attribute filters cleared successfully",
		"data":    resp,
	})
}
