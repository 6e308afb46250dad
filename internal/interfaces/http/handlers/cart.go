// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartStore *cart.Store
	config    *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartStore *cart.Store, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartStore: cartStore,
		config:    cfg,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	cartResponse, err := h.cartStore.Get(c.Request.Context(), h.cartKey(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req cart.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartStore.AddItem(c.Request.Context(), h.cartKey(c), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartResponse,
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req cart.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartStore.UpdateQuantity(c.Request.Context(), h.cartKey(c), c.Param("id"), req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartResponse,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	cartResponse, err := h.cartStore.RemoveItem(c.Request.Context(), h.cartKey(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove cart item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartResponse,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartStore.Clear(c.Request.Context(), h.cartKey(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	count, err := h.cartStore.ItemCount(c.Request.Context(), h.cartKey(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get cart count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

// MergeGuestCart handles POST /cart/merge - called after login so the guest
// cart follows the user.
func (h *CartHandler) MergeGuestCart(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	sessionID := h.getOrCreateSessionID(c)
	if err := h.cartStore.Merge(c.Request.Context(), *userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to merge cart",
		})
		return
	}

	cartResponse, err := h.cartStore.Get(c.Request.Context(), cart.Key{UserID: userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve merged cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Guest cart merged successfully",
		"data":    cartResponse,
	})
}

// cartKey resolves the cart key for the request: the user ID when
// authenticated, the session cookie otherwise.
func (h *CartHandler) cartKey(c *gin.Context) cart.Key {
	if userID := middleware.UserIDFromContext(c); userID != nil {
		return cart.Key{UserID: userID}
	}
	return cart.Key{SessionID: h.getOrCreateSessionID(c)}
}

// getOrCreateSessionID gets the session ID from the cookie or creates one
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		// Session cookie valid for a year; the cart itself never expires
		c.SetCookie("session_id", sessionID, 365*86400, "/", "", false, true)
	}

	return sessionID
}
