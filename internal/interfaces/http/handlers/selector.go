// internal/interfaces/http/handlers/selector.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogtriplek/tyre-storefront/internal/domain/catalog"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
)

// SelectorHandler drives the vehicle picker
type SelectorHandler struct {
	store storefront.Store
}

// NewSelectorHandler creates a new selector handler
func NewSelectorHandler(store storefront.Store) *SelectorHandler {
	return &SelectorHandler{store: store}
}

// SetQueryRequest is the body of PUT /selector/query
type SetQueryRequest struct {
	Query string `json:"query"`
	Open  *bool  `json:"open"`
}

// SelectVehicleRequest is the body of PUT /selector/vehicle
type SelectVehicleRequest struct {
	VehicleID string `json:"vehicle_id" binding:"required"`
}

// SelectorResponse is the picker state
type SelectorResponse struct {
	Query      string            `json:"query"`
	Open       bool              `json:"open"`
	Selected   *catalog.Vehicle  `json:"selected"`
	Candidates []catalog.Vehicle `json:"candidates"`
}

func selectorResponse(s *storefront.Session) SelectorResponse {
	sel := s.Selector()
	return SelectorResponse{
		Query:      sel.Query(),
		Open:       sel.IsOpen(),
		Selected:   sel.Selected(),
		Candidates: sel.Candidates(),
	}
}

// GetSelector handles GET /selector
func (h *SelectorHandler) GetSelector(c *gin.Context) {
	var resp SelectorResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		resp = selectorResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Selector retrieved successfully",
		"data":    resp,
	})
}

// SetQuery handles PUT /selector/query
func (h *SelectorHandler) SetQuery(c *gin.Context) {
	var req SetQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var resp SelectorResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		s.SetQuery(req.Query)
		if req.Open != nil {
			s.Selector().SetOpen(*req.Open)
		}
		resp = selectorResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Query updated successfully",
		"data":    resp,
	})
}

// Toggle handles POST /selector/toggle
func (h *SelectorHandler) Toggle(c *gin.Context) {
	var resp SelectorResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		s.Selector().Toggle()
		resp = selectorResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Selector toggled successfully",
		"data":    resp,
	})
}

// SelectVehicle handles PUT /selector/vehicle
func (h *SelectorHandler) SelectVehicle(c *gin.Context) {
	var req SelectVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var resp SelectorResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		if !s.SelectVehicle(req.VehicleID) {
			return notFound("Vehicle not found", req.VehicleID)
		}
		resp = selectorResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle selected successfully",
		"data":    resp,
	})
}

// ClearVehicle handles DELETE /selector/vehicle
func (h *SelectorHandler) ClearVehicle(c *gin.Context) {
	var resp SelectorResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		s.ClearVehicle()
		resp = selectorResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle cleared successfully",
		"data":    resp,
	})
}
