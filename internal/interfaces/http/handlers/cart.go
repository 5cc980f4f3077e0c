// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogtriplek/tyre-storefront/internal/domain/cart"
	"github.com/ogtriplek/tyre-storefront/internal/domain/storefront"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	store storefront.Store
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store storefront.Store) *CartHandler {
	return &CartHandler{store: store}
}

// AddToCartRequest is the body of POST /cart/items
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest is the body of PUT /cart/items/:id. Zero or less removes the item.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=999"`
}

// CartResponse is the cart with totals
type CartResponse struct {
	Items     []cart.Entry `json:"items"`
	Totals    cart.Totals  `json:"totals"`
	JustAdded string       `json:"just_added,omitempty"`
}

func cartResponse(s *storefront.Session) CartResponse {
	return CartResponse{
		Items:     s.Cart().Items(),
		Totals:    s.Cart().Totals(),
		JustAdded: s.Notice().Current(),
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	var resp CartResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		resp = cartResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    resp,
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	var count int
	if !withSession(c, h.store, func(s *storefront.Session) error {
		count = s.Cart().TotalItems()
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var resp CartResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		if !s.AddToCart(req.ProductID) {
			return notFound("Product not found", req.ProductID)
		}
		resp = cartResponse(s)
		// The flag does not outlive the request with every store
		resp.JustAdded = req.ProductID
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    resp,
	})
}

// UpdateCartItem handles PUT /cart/items/:id. Unknown items are left alone.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	productID := c.Param("id")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var resp CartResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		s.SetCartQuantity(productID, *req.Quantity)
		resp = cartResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    resp,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID := c.Param("id")

	var resp CartResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		s.RemoveFromCart(productID)
		resp = cartResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    resp,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	var resp CartResponse
	if !withSession(c, h.store, func(s *storefront.Session) error {
		s.ClearCart()
		resp = cartResponse(s)
		return nil
	}) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    resp,
	})
}
