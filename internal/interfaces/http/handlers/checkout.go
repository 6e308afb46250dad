// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the WhatsApp checkout hand-off
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		config:          cfg,
	}
}

// CreateHandoff handles POST /checkout/whatsapp
func (h *CheckoutHandler) CreateHandoff(c *gin.Context) {
	key := cart.Key{UserID: middleware.UserIDFromContext(c)}
	if key.UserID == nil {
		sessionID, err := c.Cookie("session_id")
		if err != nil || sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
			return
		}
		key.SessionID = sessionID
	}

	handoff, err := h.checkoutService.Handoff(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout hand-off created successfully",
		"data":    handoff,
	})
}
